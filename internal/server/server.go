// Package server provides the HTTP REST API for the docgen client: session
// state, collection editing, and generation submission for a browser or any
// other thin rendering surface.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/docgen-client/internal/backend"
	"github.com/jonathan/docgen-client/internal/generate"
	"github.com/jonathan/docgen-client/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	sessions   *session.Manager
	orch       *generate.Orchestrator
}

// Config holds server configuration
type Config struct {
	Port           int
	BackendURL     string
	RequestTimeout time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	opts := backend.DefaultOptions()
	if cfg.RequestTimeout > 0 {
		opts.Timeout = cfg.RequestTimeout
	}
	client, err := backend.New(cfg.BackendURL, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	s := &Server{
		sessions: session.NewManager(),
		orch:     generate.New(client, generate.NewArtifactStore()),
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PUT /sessions/{id}/fields", s.handleSetFields)
	mux.HandleFunc("PUT /sessions/{id}/doc-type", s.handleSetDocType)
	mux.HandleFunc("PUT /sessions/{id}/mode", s.handleSetMode)

	// Collection endpoints
	mux.HandleFunc("POST /sessions/{id}/collections/{name}", s.handleAddToCollection)
	mux.HandleFunc("GET /sessions/{id}/collections/{name}", s.handleListCollection)
	mux.HandleFunc("DELETE /sessions/{id}/collections/{name}/{index}", s.handleRemoveFromCollection)
	mux.HandleFunc("POST /sessions/{id}/collections/{name}/{index}/edit", s.handleEditCollectionItem)

	// Generation endpoints
	mux.HandleFunc("POST /sessions/{id}/generate", s.handleGenerate)
	mux.HandleFunc("GET /artifacts/{id}", s.handleGetArtifact)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation requests
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
