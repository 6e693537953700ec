//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/himanishpuri/BeatPattern/internal/format"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/beatmap"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/storage"
	"github.com/himanishpuri/BeatPattern/pkg/logger"
	"github.com/himanishpuri/BeatPattern/pkg/models"
	"github.com/himanishpuri/BeatPattern/pkg/utils"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service beatpattern.Service
	config  *ServerConfig
	log     beatpattern.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service beatpattern.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger().WithPrefix("http"),
	}
}

// respond writes data as JSON or MessagePack depending on the request
func (s *Server) respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if err := format.WriteResponse(w, r, statusCode, data); err != nil {
		s.log.Errorf("Failed to encode response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	s.respond(w, r, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]any{
		"service": "BeatPattern API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":         "GET /health",
			"listAnalyses":   "GET /api/analyses",
			"addAnalysis":    "POST /api/analyses",
			"getAnalysis":    "GET /api/analyses/{id}",
			"deleteAnalysis": "DELETE /api/analyses/{id}",
			"analyze":        "POST /api/analyze",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.service.CountAnalyses()
	if err != nil {
		s.log.Errorf("Failed to count analyses: %v", err)
		s.respondError(w, r, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	s.respond(w, r, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Time:          time.Now().Format(time.RFC3339),
		AnalysisCount: count,
	})
}

// handleListAnalyses handles GET /api/analyses
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	results, err := s.service.ListAnalyses()
	if err != nil {
		s.log.Errorf("Failed to list analyses: %v", err)
		s.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve analyses")
		return
	}
	if results == nil {
		results = []models.AnalysisResult{}
	}

	s.respond(w, r, http.StatusOK, ListAnalysesResponse{
		Analyses: results,
		Count:    len(results),
	})
}

// handleGetAnalysis handles GET /api/analyses/{id}
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.analysisID(w, r)
	if !ok {
		return
	}

	res, err := s.service.GetAnalysis(id)
	if err != nil {
		s.respondLookupError(w, r, id, err)
		return
	}
	s.respond(w, r, http.StatusOK, res)
}

// handleDeleteAnalysis handles DELETE /api/analyses/{id}
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.analysisID(w, r)
	if !ok {
		return
	}

	if err := s.service.DeleteAnalysis(id); err != nil {
		s.respondLookupError(w, r, id, err)
		return
	}

	s.log.Infof("Deleted analysis ID=%s", id)
	s.respond(w, r, http.StatusOK, DeleteAnalysisResponse{
		Message: "Analysis deleted successfully",
		ID:      id,
	})
}

// handleAddAnalysis handles POST /api/analyses
func (s *Server) handleAddAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	m, ok := s.readBeatmap(w, r)
	if !ok {
		return
	}

	res, err := s.service.AddBeatmap(ctx, m)
	if err != nil {
		s.log.Errorf("Failed to store analysis: %v", err)
		s.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to store analysis: %v", err))
		return
	}
	s.respond(w, r, http.StatusCreated, res)
}

// handleAnalyze handles POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	m, ok := s.readBeatmap(w, r)
	if !ok {
		return
	}

	res, err := s.service.Analyze(ctx, m)
	if err != nil {
		s.log.Errorf("Failed to analyze beatmap: %v", err)
		s.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to analyze beatmap: %v", err))
		return
	}
	s.respond(w, r, http.StatusOK, res)
}

// analysisID pulls and validates the {id} route variable.
func (s *Server) analysisID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if !utils.IsValidUUID(id) {
		s.respondError(w, r, http.StatusBadRequest, "Invalid analysis ID")
		return "", false
	}
	return id, true
}

func (s *Server) respondLookupError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Warnf("Analysis not found: %s", id)
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("Analysis %s not found", id))
		return
	}
	s.log.Errorf("Lookup of analysis %s failed: %v", id, err)
	s.respondError(w, r, http.StatusInternalServerError, "Failed to access analysis")
}

// readBeatmap decodes the request body as a .osu file. Multipart uploads
// carry it in the "beatmap" field; anything else is read as the raw file.
func (s *Server) readBeatmap(w http.ResponseWriter, r *http.Request) (*models.Beatmap, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBeatmapBytes)

	var body io.Reader = r.Body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(MaxBeatmapBytes); err != nil {
			s.log.Errorf("Failed to parse form: %v", err)
			s.respondError(w, r, http.StatusBadRequest, "Failed to parse form data")
			return nil, false
		}
		file, header, err := r.FormFile(BeatmapFormField)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, "beatmap file is required")
			return nil, false
		}
		defer file.Close()
		s.log.Debugf("Received upload %s (%d bytes)", header.Filename, header.Size)
		body = file
	}

	m, err := beatmap.Decode(body)
	if err != nil {
		s.log.Warnf("Rejected beatmap: %v", err)
		s.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid beatmap: %v", err))
		return nil, false
	}
	return m, true
}
