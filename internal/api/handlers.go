package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/lexirank/internal/answers"
	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/store"
)

// Health

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

// Ranks

func (s *Server) handleListRanks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ranking.AllTiers())
}

func (s *Server) handleGetRank(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(chi.URLParam(r, "rank"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "rank must be an integer")
		return
	}
	respondJSON(w, http.StatusOK, ranking.Info(rank))
}

// Levels

func (s *Server) readSheet(w http.ResponseWriter, r *http.Request) (*answers.Sheet, bool) {
	sheet, err := answers.Read(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return nil, false
	}
	return sheet, true
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	sheet, ok := s.readSheet(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, toLevelResponse(s.scoring.Estimate(sheet.Answers)))
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	sheet, ok := s.readSheet(w, r)
	if !ok {
		return
	}

	outcome, err := s.scoring.Score(r.Context(), sheet)
	if err != nil {
		s.logger.Error("failed to score sheet", "error", err, "student_id", sheet.StudentID)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to score answer sheet")
		return
	}
	body, err := toScoreResponse(outcome).encode()
	if err != nil {
		s.logger.Error("failed to encode outcome", "error", err)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to encode result")
		return
	}
	respondEncoded(w, http.StatusCreated, body)
}

// Results

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.scoring.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "result not found")
			return
		}
		s.logger.Error("failed to get result", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to get result")
		return
	}
	s.respondResult(w, rec)
}

func (s *Server) handleLatestResult(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	rec, err := s.scoring.Latest(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "no results for student")
			return
		}
		s.logger.Error("failed to get latest result", "error", err, "student_id", studentID)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to get result")
		return
	}
	s.respondResult(w, rec)
}

func (s *Server) respondResult(w http.ResponseWriter, rec *store.ResultRecord) {
	body, err := toResultResponse(rec).encode()
	if err != nil {
		s.logger.Error("failed to encode result", "error", err, "id", rec.ID)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to encode result")
		return
	}
	respondEncoded(w, http.StatusOK, body)
}

func (s *Server) handleStudentResults(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, codeInvalidRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.scoring.History(r.Context(), studentID, limit)
	if err != nil {
		s.logger.Error("failed to list results", "error", err, "student_id", studentID)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to list results")
		return
	}

	body, err := encodeResults(recs)
	if err != nil {
		s.logger.Error("failed to encode results", "error", err, "student_id", studentID)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to encode results")
		return
	}
	respondEncoded(w, http.StatusOK, body)
}
