// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

// Package server exposes the classifier and conversion facade over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/carabila/markitdown-server/internal/convert"
	"github.com/carabila/markitdown-server/internal/detect"
)

// DefaultMaxBytes caps request bodies at 64 MiB unless configured.
const DefaultMaxBytes = 64 << 20

const defaultVersion = "1.2.0"

// Server holds the HTTP handler state: one detector, one converter, and
// request policy.
type Server struct {
	detector  *detect.Detector
	converter *convert.Converter
	log       *slog.Logger
	maxBytes  int64
	version   string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithMaxBytes sets the request body size limit in bytes.
func WithMaxBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithVersion sets the version string reported by the health endpoint.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// New creates a Server with the given options.
func New(opts ...Option) *Server {
	s := &Server{
		detector:  detect.New(),
		converter: convert.New(),
		log:       slog.Default(),
		maxBytes:  DefaultMaxBytes,
		version:   defaultVersion,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler. Method mismatches on known
// paths get 405 from the mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /formats", s.handleFormats)
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("POST /convert-base64", s.handleConvertBase64)
	return s.logRequests(mux)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
