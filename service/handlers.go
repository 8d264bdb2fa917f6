// Copyright (c) 2026, The gpufx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/softglare/gpufx/gifx"
	"github.com/softglare/gpufx/transform"
)

func (s *Server) routes(mux *http.ServeMux) {
	for _, prefix := range []string{"", "/api/v1"} {
		mux.HandleFunc("GET "+prefix+"/health", s.handleHealth)
		mux.HandleFunc("POST "+prefix+"/mirror-gif", s.handleTransform("mirror", s.pickMirror))
		mux.HandleFunc("POST "+prefix+"/blur-gif", s.handleTransform("blur", s.pickBlur))
	}
}

func (s *Server) pickMirror(r *http.Request) gifx.Transformer {
	return s.engine.Mirror()
}

// pickBlur reads the optional radius form field, falling back to the
// default and clamping to the configured maximum.
func (s *Server) pickBlur(r *http.Request) gifx.Transformer {
	radius := transform.DefaultBlurRadius
	if v := r.FormValue("radius"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			radius = float32(f)
		}
	}
	if radius > s.cfg.BlurRadiusMax {
		radius = s.cfg.BlurRadiusMax
	}
	return s.engine.Blur(radius)
}

// handleTransform runs one whole-GIF transform: extract the multipart
// upload, process it frame by frame, and return the re-encoded GIF.
func (s *Server) handleTransform(op string, pick func(*http.Request) gifx.Transformer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadMB<<20)

		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid_input", `multipart field "file" is required`)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid_input", "could not read upload")
			return
		}
		if len(data) == 0 {
			s.writeError(w, http.StatusBadRequest, "invalid_input", "uploaded file is empty")
			return
		}

		out, err := gifx.Process(data, pick(r))
		if err != nil {
			status, code := classify(err)
			s.log.Warn("transform failed",
				zap.String("op", op),
				zap.String("filename", header.Filename),
				zap.Int("bytes", len(data)),
				zap.Error(err))
			s.writeError(w, status, code, err.Error())
			return
		}

		w.Header().Set("Content-Type", "image/gif")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"service":  ServiceName,
		"version":  Version,
		"engine":   s.engine.Name(),
		"features": []string{"mirror", "blur"},
	})
}

// classify maps processing errors to HTTP status codes: anything the
// client sent that could not be decoded or transformed is 422, everything
// else is an internal failure.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, gifx.ErrDecode),
		errors.Is(err, gifx.ErrNoFrames),
		errors.Is(err, gifx.ErrInvalidFrameSize),
		errors.Is(err, gifx.ErrEncode),
		errors.Is(err, transform.ErrInputSize):
		return http.StatusUnprocessableEntity, "processing_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}
