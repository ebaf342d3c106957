// Package server provides the Firestore tool dispatcher and its transports:
// a chi HTTP server and an MCP server over the official SDK.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config contains HTTP server configuration values such as port and auth token.
type Config struct {
	Port  string
	Token string
}

// Server wires the dispatcher into an HTTP router.
type Server struct {
	cfg        Config
	router     *chi.Mux
	dispatcher *Dispatcher
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config, store Store) *Server {
	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		dispatcher: NewDispatcher(store),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"tools": toolCatalog()})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	result, err := s.dispatcher.Dispatch(r.Context(), req.Name, req.Args)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTool):
			http.Error(w, err.Error(), http.StatusNotFound)
		case IsArgumentError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "firestore error: "+err.Error(), http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
}
