package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fecscope/fecscope/internal/fec"
	"github.com/fecscope/fecscope/internal/statements"
)

type analysisCreated struct {
	ID        uuid.UUID   `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Summary   fec.Summary `json:"summary"`
}

// createAnalysis accepts a raw FEC body, runs the full pipeline and
// registers the result under a fresh id.
func (s *Server) createAnalysis(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	entries, err := fec.Read(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, fec.ErrEmpty) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	res := s.engine.Run(entries, nil)
	sa := s.store(res)
	writeJSON(w, http.StatusCreated, analysisCreated{
		ID:        sa.ID,
		CreatedAt: sa.CreatedAt,
		Summary:   res.Summary,
	})
}

func (s *Server) withAnalysis(w http.ResponseWriter, r *http.Request) (*storedAnalysis, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid analysis id")
		return nil, false
	}
	sa, ok := s.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "analysis not found")
		return nil, false
	}
	return sa, true
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sa.Result)
}

func (s *Server) getBalances(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sa.Result.Balances)
}

func (s *Server) getBalanceSheet(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sa.Result.BalanceSheet)
}

func (s *Server) getIncomeStatement(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sa.Result.IncomeStatement)
}

func (s *Server) getSIG(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sa.Result.SIG)
}

// getCashFlow reconciles the analysis against a prior-period analysis
// given by the "prior" query parameter. Without it the result is the
// documented "unavailable" state, not an error.
func (s *Server) getCashFlow(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}

	priorParam := r.URL.Query().Get("prior")
	if priorParam == "" {
		writeJSON(w, http.StatusOK, sa.Result.CashFlow)
		return
	}

	priorID, err := uuid.Parse(priorParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prior analysis id")
		return
	}
	prior, found := s.lookup(priorID)
	if !found {
		writeError(w, http.StatusNotFound, "prior analysis not found")
		return
	}

	cf := statements.BuildCashFlow(sa.Result.BalanceSet(), prior.Result.BalanceSet())
	writeJSON(w, http.StatusOK, cf)
}

func (s *Server) getCycles(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sa.Result.Cycles)
}

func (s *Server) getMateriality(w http.ResponseWriter, r *http.Request) {
	sa, ok := s.withAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sa.Result.Materiality)
}
