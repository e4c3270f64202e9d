package handlers

import (
	"errors"
	"net/http"

	"vocaday/internal/models"
	"vocaday/internal/service"
)

// WordHandler serves the scheduled vocabulary
type WordHandler struct {
	vocab *service.VocabService
}

// NewWordHandler creates a new word handler
func NewWordHandler(vocab *service.VocabService) *WordHandler {
	return &WordHandler{vocab: vocab}
}

// GetWords handles GET /api/words?date=YYYY-MM-DD. A date with no words is a
// normal response with an empty list, not an error.
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "date query parameter is required", "", nil)
		return
	}

	words, err := h.vocab.WordsForDate(date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to load words", "Word lookup failed", err)
		return
	}

	if words == nil {
		words = []models.Word{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"date":  date,
		"words": words,
	})
}
