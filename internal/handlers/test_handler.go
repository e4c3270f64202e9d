package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"vocaday/internal/models"
	"vocaday/internal/service"
)

const resultHistoryLimit = 20

// TestHandler drives the server-held test sessions
type TestHandler struct {
	vocab *service.VocabService
	tests *service.TestService
}

// NewTestHandler creates a new test handler
func NewTestHandler(vocab *service.VocabService, tests *service.TestService) *TestHandler {
	return &TestHandler{vocab: vocab, tests: tests}
}

// CreateTest handles POST /api/tests. The body names the test type and the
// date whose words the test runs over.
func (h *TestHandler) CreateTest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type models.TestType `json:"type"`
		Date string          `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}
	if !req.Type.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown test type", "", nil)
		return
	}

	words, err := h.vocab.WordsForDate(req.Date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to load words", "Word lookup failed", err)
		return
	}

	view, err := h.tests.StartTest(r.Context(), userIDFromContext(r.Context()), req.Type, words)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, view)
}

// GetTest handles GET /api/tests/{id}
func (h *TestHandler) GetTest(w http.ResponseWriter, r *http.Request) {
	view, err := h.tests.View(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SubmitAnswer handles POST /api/tests/{id}/answer
func (h *TestHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}

	outcome, err := h.tests.Submit(r.Context(), r.PathValue("id"), req.Answer)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, outcome)
}

// NextQuestion handles POST /api/tests/{id}/next
func (h *TestHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.tests.Next(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// GetResults handles GET /api/results, the caller's completed-test history
func (h *TestHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.tests.UserResults(userIDFromContext(r.Context()), resultHistoryLimit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load results", "Result lookup failed", err)
		return
	}
	if results == nil {
		results = []models.TestResult{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
