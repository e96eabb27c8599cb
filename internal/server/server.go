// Package server exposes the question-answering pipeline over HTTP for the
// dashboard. AI-side failures never produce a non-200 response; the body
// carries a degraded answer instead.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"scholar-rag/internal/generator"
	"scholar-rag/internal/models"
	"scholar-rag/internal/sources"
)

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer  string          `json:"answer"`
	Sources []models.Source `json:"sources"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type Server struct {
	gen         generator.Generator
	allowOrigin string
}

func New(gen generator.Generator, allowOrigin string) *Server {
	return &Server{gen: gen, allowOrigin: allowOrigin}
}

// Handler builds the route table with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ask", s.handleAsk)
	return s.cors(mux)
}

func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Msg("Starting HTTP server")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	logger := log.With().Str("request_id", requestID).Logger()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.gen.Answer(r.Context(), req.Question)
	if err != nil {
		// Still HTTP 200: the ask interface never errors for AI-side
		// failures, the body degrades instead.
		logger.Error().Err(err).Msg("Answer generation failed")
		writeJSON(w, http.StatusOK, AskResponse{
			Answer:  models.FallbackAnswer,
			Sources: []models.Source{},
		})
		return
	}

	logger.Info().
		Stringer("kind", result.Kind).
		Bool("cached", result.Cached).
		Int("chunks", len(result.Chunks)).
		Msg("Answered question")

	resolved := sources.FromChunks(result.Chunks)
	if resolved == nil {
		resolved = []models.Source{}
	}
	writeJSON(w, http.StatusOK, AskResponse{Answer: result.Answer, Sources: resolved})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}
