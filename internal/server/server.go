// Package server exposes the derivation engine over a JSON API. Results
// live in process memory only; nothing is persisted across restarts.
package server

import (
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/fecscope/fecscope/internal/analysis"
)

// Server holds the engine and the in-memory analysis registry.
type Server struct {
	engine *analysis.Engine
	router chi.Router
	addr   string

	mu       sync.RWMutex
	analyses map[uuid.UUID]*storedAnalysis
}

type storedAnalysis struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Result    *analysis.Result
}

// New builds a Server with its routes registered.
func New(engine *analysis.Engine, addr string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		engine:   engine,
		router:   r,
		addr:     addr,
		analyses: make(map[uuid.UUID]*storedAnalysis),
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyses", s.createAnalysis)
		r.Get("/analyses/{id}", s.getAnalysis)
		r.Get("/analyses/{id}/balances", s.getBalances)
		r.Get("/analyses/{id}/balance-sheet", s.getBalanceSheet)
		r.Get("/analyses/{id}/income-statement", s.getIncomeStatement)
		r.Get("/analyses/{id}/sig", s.getSIG)
		r.Get("/analyses/{id}/cash-flow", s.getCashFlow)
		r.Get("/analyses/{id}/cycles", s.getCycles)
		r.Get("/analyses/{id}/materiality", s.getMateriality)
	})

	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("fecscope server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	log.Printf("fecscope server listening on %s", ln.Addr())
	return http.Serve(ln, s.router)
}

// Handler exposes the router, e.g. for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) store(res *analysis.Result) *storedAnalysis {
	sa := &storedAnalysis{ID: uuid.New(), CreatedAt: time.Now().UTC(), Result: res}
	s.mu.Lock()
	s.analyses[sa.ID] = sa
	s.mu.Unlock()
	return sa
}

func (s *Server) lookup(id uuid.UUID) (*storedAnalysis, bool) {
	s.mu.RLock()
	sa, ok := s.analyses[id]
	s.mu.RUnlock()
	return sa, ok
}
