// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/softglare/gpufx/logx"
	"github.com/softglare/gpufx/transform"
)

const (
	// ServiceName identifies this service in health responses.
	ServiceName = "gpufx"
	// Version is reported in health responses and the X-Version header.
	Version = "0.1.0"

	shutdownTimeout = 10 * time.Second
)

// Server wires the transform engine to the HTTP surface.
type Server struct {
	cfg    *Config
	log    *logx.Logger
	engine transform.Engine
	http   *http.Server
}

// New builds a server around an already-initialized engine. The engine's
// lifetime is the caller's responsibility.
func New(cfg *Config, log *logx.Logger, engine transform.Engine) *Server {
	s := &Server{cfg: cfg, log: log, engine: engine}
	mux := http.NewServeMux()
	s.routes(mux)
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.withVersion(s.withLogging(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully, letting
// in-flight transforms finish.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening",
			zap.String("addr", s.http.Addr),
			zap.String("engine", s.engine.Name()),
			zap.String("version", Version))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shctx)
}
