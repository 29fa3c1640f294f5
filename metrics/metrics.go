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
// Package metrics exposes prometheus collectors through an HTTP server.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bbva/hashtree/api/metricshttp"
	"github.com/bbva/hashtree/log"
)

// Registry is implemented by anything collectors can be registered on.
type Registry interface {
	MustRegister(...prometheus.Collector)
}

// Server serves the metrics of its own registry at /metrics.
type Server struct {
	registry *prometheus.Registry
	server   *http.Server
}

// NewServer returns a metrics server bound to addr. The registry comes
// with the go runtime and process collectors.
func NewServer(addr string) *Server {
	r := prometheus.NewRegistry()
	r.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Server{
		registry: r,
		server:   &http.Server{Addr: addr, Handler: metricshttp.NewMetricsHTTP(r)},
	}
}

func (s *Server) MustRegister(cs ...prometheus.Collector) {
	s.registry.MustRegister(cs...)
}

// Registry returns the registry the server exposes.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Start blocks serving metrics until Shutdown is called.
func (s *Server) Start() {
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		log.Errorf("Can't start metrics HTTP server: %s", err)
	}
}

func (s *Server) Shutdown() {
	if err := s.server.Shutdown(context.Background()); err != nil {
		log.Errorf("Error stopping metrics HTTP server: %s", err)
	}
}
