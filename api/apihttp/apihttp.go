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
// Package apihttp implements the HTTP API of a hash tree server.
package apihttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/protocol"
)

// MsgpackContentType selects the msgpack encoding of GET /tree responses
// when found in the Accept header.
const MsgpackContentType = "application/msgpack"

// TreeBuilder is the part of a merkle.Builder the API relies on.
type TreeBuilder interface {
	Add(value []byte) (merkle.Tree, error)
	BuildTree() (merkle.Tree, error)
}

// Create a JSON struct for our HealthCheck
type HealthCheckResponse struct {
	Version int    `json:"version"`
	Status  string `json:"status"`
}

// HealthCheckHandler checks the system status and returns it accordinly.
// The http call it answer is:
//	GET /health-check
//
// The following statuses are expected:
//
// If everything is allright, the HTTP status is 200 and the body contains:
//	 {"version": "0", "status":"ok"}
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	HealthCheckRequest.Inc()
	defer HealthCheckRequest.Dec()

	result := HealthCheckResponse{
		Version: 0,
		Status:  "ok",
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		panic(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	out := new(bytes.Buffer)
	_ = json.Compact(out, resultJson)

	_, _ = w.Write(out.Bytes())
}

// AddLeaf appends a value to the tree and returns the new root.
// The http post url is:
//	POST /leaves
//
// The following statuses are expected:
// If everything is allright, the HTTP status is 201 and the body contains:
//	{
//	"size": 1,
//	"root": "559aead08264d5795d3909718cdd05abd49572e84fe55590eef31a88a08fdffd"
//	}
// A missing or blank value answers 400. The value is appended before the
// tree is built, so when the digest function is unavailable the answer is
// 202 with the last built snapshot: the leaf is kept and a later GET /root
// builds it. Clients must not resend the value in that case.
func AddLeaf(builder TreeBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		AddLeafRequest.Inc()
		defer AddLeafRequest.Dec()

		// Make sure we can only be called with an HTTP POST request.
		if r.Method != "POST" {
			w.Header().Set("Allow", "POST")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if r.Body == nil {
			http.Error(w, "Please send a request body", http.StatusBadRequest)
			return
		}

		var leaf protocol.Leaf
		if err := json.NewDecoder(r.Body).Decode(&leaf); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		value := strings.TrimSpace(leaf.Value)
		if value == "" {
			http.Error(w, "Please send a non blank value", http.StatusBadRequest)
			return
		}

		tree, err := builder.Add([]byte(value))
		if err != nil {
			if errors.Cause(err) == hashing.ErrDigestUnavailable {
				log.Warnf("Leaf accepted but tree not built: %v", err)
				writeJSON(w, http.StatusAccepted, protocol.ToSnapshot(tree))
				return
			}
			buildError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, protocol.ToSnapshot(tree))
	}
}

// Root returns the size and root digest of the tree over every leaf
// added so far.
//	GET /root
func Root(builder TreeBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RootRequest.Inc()
		defer RootRequest.Dec()

		if r.Method != "GET" {
			w.Header().Set("Allow", "GET")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		tree, err := builder.BuildTree()
		if err != nil {
			buildError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, protocol.ToSnapshot(tree))
	}
}

// Tree returns the whole tree, in msgpack when the client accepts it and
// in JSON otherwise.
//	GET /tree
func Tree(builder TreeBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		TreeRequest.Inc()
		defer TreeRequest.Dec()

		if r.Method != "GET" {
			w.Header().Set("Allow", "GET")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		tree, err := builder.BuildTree()
		if err != nil {
			buildError(w, err)
			return
		}

		snapshot := protocol.ToTreeSnapshot(tree)
		if !strings.Contains(r.Header.Get("Accept"), MsgpackContentType) {
			writeJSON(w, http.StatusOK, snapshot)
			return
		}

		out, err := snapshot.Encode()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", MsgpackContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	out, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func buildError(w http.ResponseWriter, err error) {
	log.Errorf("Unable to build tree: %v", err)
	if errors.Cause(err) == hashing.ErrDigestUnavailable {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// AuthHandlerMiddleware function is an HTTP handler wrapper that validates
// our requests. An empty key disables the check.
func AuthHandlerMiddleware(apiKey string, handler http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			handler.ServeHTTP(w, r)
			return
		}

		// Check if Api-Key header is empty
		key := r.Header.Get("Api-Key")
		if key == "" {
			http.Error(w, "Missing Api-Key header", http.StatusUnauthorized)
			return
		}
		if key != apiKey {
			http.Error(w, "Invalid Api-Key header", http.StatusUnauthorized)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// unknownRoute labels the requests no registered pattern serves.
const unknownRoute = "other"

// route returns the mux pattern serving r so the path label only takes
// the values registered on the mux.
func route(handler http.Handler, r *http.Request) string {
	if mux, ok := handler.(*http.ServeMux); ok {
		if _, pattern := mux.Handler(r); pattern != "" {
			return pattern
		}
	}
	return unknownRoute
}

// LogHandler logs every request with its status and duration.
func LogHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := route(handler, r)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		handler.ServeHTTP(sw, r)
		RequestsTotal.WithLabelValues(path, http.StatusText(sw.status)).Inc()
		log.Debugf("%s %s %d %s", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

// NewApiHttp returns a new *http.ServeMux containing all the API handlers
// already configured
func NewApiHttp(builder TreeBuilder, apiKey string) *http.ServeMux {

	api := http.NewServeMux()
	api.HandleFunc("/health-check", AuthHandlerMiddleware(apiKey, HealthCheckHandler))
	api.HandleFunc("/leaves", AuthHandlerMiddleware(apiKey, AddLeaf(builder)))
	api.HandleFunc("/root", AuthHandlerMiddleware(apiKey, Root(builder)))
	api.HandleFunc("/tree", AuthHandlerMiddleware(apiKey, Tree(builder)))

	return api
}
