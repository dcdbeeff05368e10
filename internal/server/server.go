// Package server exposes the HTTP boundary: POST /chat and GET /history.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mediquery/mediquery-go/internal/agent"
	"github.com/mediquery/mediquery-go/internal/history"
	"github.com/mediquery/mediquery-go/internal/logger"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

// ChatProcessor composes and persists the reply for one message.
type ChatProcessor interface {
	Process(ctx context.Context, message string) (string, error)
}

// HistoryLister returns the most recent chat records, newest first.
type HistoryLister interface {
	ListRecent(ctx context.Context, limit int) ([]history.Record, error)
}

// Server holds the handler dependencies.
type Server struct {
	agent ChatProcessor
	store HistoryLister
}

// New creates a server.
func New(agent ChatProcessor, store HistoryLister) *Server {
	return &Server{agent: agent, store: store}
}

// Router builds the chi router with request ids, panic recovery, and CORS.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Post("/chat", s.handleChat)
	r.Get("/history", s.handleHistory)
	return r
}

// corsMiddleware allows browser frontends on any origin to call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchangeID := uuid.NewString()
	logger.L.Info("chat request", "exchange_id", exchangeID, "length", len(req.Message))

	reply, err := s.agent.Process(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		logger.L.Error("chat processing failed", "exchange_id", exchangeID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = max(1, min(maxHistoryLimit, n))
		}
		// Non-numeric input silently falls back to the default.
	}

	records, err := s.store.ListRecent(r.Context(), limit)
	if err != nil {
		logger.L.Error("history listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
