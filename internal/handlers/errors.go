package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vocaday/internal/ai"
	"vocaday/internal/service"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, map[string]string{"error": userMsg})
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondWithServiceError maps the service and AI error kinds onto HTTP
// statuses: bad input is the caller's fault, missing sessions are 404, state
// conflicts are 409, and anything the language model did wrong is a 502.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoWords),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, ai.ErrEmptyWordList),
		errors.Is(err, ai.ErrEmptyWord),
		errors.Is(err, ai.ErrEmptySentence):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)

	case errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)

	case errors.Is(err, service.ErrTestComplete),
		errors.Is(err, service.ErrAlreadyAnswered),
		errors.Is(err, service.ErrSubmissionPending),
		errors.Is(err, service.ErrNotAnswered):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)

	case errors.Is(err, ai.ErrEmptyQuiz):
		respondWithError(w, http.StatusBadGateway, err.Error(), "", nil)

	case errors.Is(err, ai.ErrMalformedResponse):
		respondWithError(w, http.StatusBadGateway, "language model returned an unusable response", "AI response error", err)

	default:
		respondWithError(w, http.StatusBadGateway, "upstream request failed", "Service error", err)
	}
}
