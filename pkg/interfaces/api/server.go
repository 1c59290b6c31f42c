// Package api exposes the pipeline over HTTP for the timeline
// front-end: upload a sheet, get the validated heats and classified
// errors back as JSON.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/hqsteel/heatline/pkg/application/services/orchestration"
	"github.com/hqsteel/heatline/pkg/domain/entities"
	"github.com/hqsteel/heatline/pkg/domain/units"
	"github.com/hqsteel/heatline/pkg/infrastructure/ingest"
)

// maxUploadBytes caps sheet uploads at 16 MB; production exports are
// well under 1 MB.
const maxUploadBytes = 16 << 20

// Server serves the parse API
type Server struct {
	opts orchestration.Options
	log  zerolog.Logger
}

// NewServer creates an API server running pipelines with the given
// options
func NewServer(opts orchestration.Options, log zerolog.Logger) *Server {
	return &Server{opts: opts, log: log}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/api/v1/health", s.handleHealth)
	r.Get("/api/v1/units", s.handleUnits)
	r.Post("/api/v1/parse", s.handleParse)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUnits returns the static unit registry so the front-end can
// label filters without hardcoding device codes.
func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	type unitInfo struct {
		Unit  string             `json:"unit"`
		Group entities.StageGroup `json:"group"`
		Order int                `json:"order"`
	}

	registry := units.All()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]unitInfo, 0, len(codes))
	for _, code := range codes {
		info := registry[code]
		out = append(out, unitInfo{Unit: code, Group: info.Group, Order: info.CanonicalOrder})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleParse accepts a multipart upload under the "file" field,
// ingests it by extension and runs the pipeline. Malformed data comes
// back as a 200 with the classified error stream; structural failures
// are a 400.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart request: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing upload field %q", "file"))
		return
	}
	defer file.Close()

	var grid [][]any
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		grid, err = ingest.ReadCSV(file)
	case ".xlsx", ".xlsm":
		grid, err = ingest.ReadXLSX(file)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported file type %q", filepath.Ext(header.Filename)))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := orchestration.New(s.opts).Run(grid)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.log.Info().
		Str("run_id", result.RunID).
		Str("file", header.Filename).
		Int("valid_heats", len(result.ValidHeats)).
		Int("errors", len(result.Errors)).
		Msg("sheet parsed")

	s.writeJSON(w, http.StatusOK, result)
}

// requestLogger is a minimal zerolog access log.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(started)).
			Msg("request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
