/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/
// Package server implements the server initialization for the api.apihttp
// and the tree builder.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bbva/hashtree/api/apihttp"
	"github.com/bbva/hashtree/build"
	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/metrics"
)

// Server encapsulates the data and logic to start/stop a hash tree server.
type Server struct {
	conf *Config

	builder       *merkle.Builder
	httpServer    *http.Server
	metricsServer *metrics.Server
}

func serverInfo(conf *Config, builder *merkle.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Make sure we can only be called with an HTTP GET request.
		if r.Method != "GET" {
			w.Header().Set("Allow", "GET")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		info := struct {
			*Config
			Leaves uint64
			Stale  bool
			Build  build.Info
		}{conf, builder.LeafCount(), builder.Stale(), build.GetInfo()}

		out, err := json.Marshal(info)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

// NewServer creates a new Server based on the parameters it receives.
func NewServer(conf *Config) (*Server, error) {

	server := &Server{conf: conf}

	opts := conf.BuilderOptions()
	opts.Logger = log.Default().Named("merkle")

	var err error
	server.builder, err = merkle.NewBuilder(opts)
	if err != nil {
		return nil, err
	}

	// create metrics server and register default metrics
	if !conf.DisableMetrics {
		server.metricsServer = metrics.NewServer(conf.MetricsAddr)
		server.metricsServer.MustRegister(merkle.Collectors()...)
		apihttp.RegisterMetrics(server.metricsServer)
	}

	// Create http endpoints
	httpMux := apihttp.NewApiHttp(server.builder, conf.APIKey)
	httpMux.HandleFunc("/info", apihttp.AuthHandlerMiddleware(conf.APIKey, serverInfo(conf, server.builder)))
	server.httpServer = newHTTPServer(conf.HTTPAddr, httpMux)

	return server, nil
}

// Start will start the server in a non-blockable fashion.
func (s *Server) Start() error {
	log.Infof("Starting hashtree server with %s strategy", s.builder.Strategy())

	if s.metricsServer != nil {
		go func() {
			log.Debugf("	* Starting metrics HTTP server in addr: %s", s.conf.MetricsAddr)
			s.metricsServer.Start()
		}()
	}

	go func() {
		log.Debugf("	* Starting API HTTP server in addr: %s", s.conf.HTTPAddr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("Can't start API HTTP Server: %s", err)
		}
	}()

	return nil
}

// Stop will close all the servers.
func (s *Server) Stop() error {
	log.Infof("Shutting down hashtree server with %d leaves", s.builder.LeafCount())

	if s.metricsServer != nil {
		log.Debugf("Metrics enabled: stopping server...")
		s.metricsServer.Shutdown()
	}

	log.Debugf("Stopping API HTTP server...")
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		log.Errorf("Error stopping API HTTP server: %v", err)
		return err
	}

	log.Debugf("Done. Exiting...")
	return nil
}

// Builder returns the tree builder the server exposes.
func (s *Server) Builder() *merkle.Builder {
	return s.builder
}

func newHTTPServer(addr string, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: apihttp.LogHandler(mux),
	}
}
