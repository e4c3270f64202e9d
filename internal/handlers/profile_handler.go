package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

const maxNicknameLength = 32

// NicknameStore is the settings surface the profile handler needs
type NicknameStore interface {
	GetNickname(userID string) (string, error)
	SetNickname(userID, nickname string) error
}

// ProfileHandler issues anonymous identities and stores per-user settings
type ProfileHandler struct {
	tokens   *TokenService
	settings NicknameStore
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(tokens *TokenService, settings NicknameStore) *ProfileHandler {
	return &ProfileHandler{tokens: tokens, settings: settings}
}

// CreateProfile handles POST /api/profile. No credentials: the response token
// is the identity, and the client keeps it.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, token, err := h.tokens.Issue()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to create profile", "Token issue failed", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{
		"user_id": userID,
		"token":   token,
	})
}

// GetNickname handles GET /api/profile/nickname. A user who never set one
// gets an empty nickname, not an error.
func (h *ProfileHandler) GetNickname(w http.ResponseWriter, r *http.Request) {
	nickname, err := h.settings.GetNickname(userIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load nickname", "Nickname lookup failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"nickname": nickname})
}

// SetNickname handles PUT /api/profile/nickname
func (h *ProfileHandler) SetNickname(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		respondWithError(w, http.StatusBadRequest, "nickname must not be empty", "", nil)
		return
	}
	if len([]rune(nickname)) > maxNicknameLength {
		respondWithError(w, http.StatusBadRequest, "nickname too long", "", nil)
		return
	}

	if err := h.settings.SetNickname(userIDFromContext(r.Context()), nickname); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to save nickname", "Nickname save failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"nickname": nickname})
}
