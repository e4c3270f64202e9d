package handlers

import (
	"encoding/json"
	"net/http"

	"vocaday/internal/service"
)

// QuizHandler exposes quiz generation and sentence checking directly, with
// the same contracts the test sessions use internally.
type QuizHandler struct {
	generator service.QuizGenerator
	grader    service.SentenceGrader
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(generator service.QuizGenerator, grader service.SentenceGrader) *QuizHandler {
	return &QuizHandler{generator: generator, grader: grader}
}

// GenerateQuiz handles POST /api/quiz/generate
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}

	quiz, err := h.generator.GenerateQuiz(r.Context(), req.Words)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"quiz": quiz})
}

// CheckSentence handles POST /api/sentence/check
func (h *QuizHandler) CheckSentence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word     string `json:"word"`
		Sentence string `json:"sentence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}

	result, err := h.grader.GradeSentence(r.Context(), req.Word, req.Sentence)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
