package handlers

import (
	"net/http"

	"vocaday/internal/models"
	"vocaday/internal/service"
)

// AdminHandler exposes the operational endpoints
type AdminHandler struct {
	vocab *service.VocabService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(vocab *service.VocabService) *AdminHandler {
	return &AdminHandler{vocab: vocab}
}

// AddDailyWords handles POST /admin/daily-words, running the daily word
// generation on demand instead of waiting for the schedule.
func (h *AdminHandler) AddDailyWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.vocab.AddDailyWords(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if words == nil {
		words = []models.NewWord{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"added": len(words),
		"words": words,
	})
}
