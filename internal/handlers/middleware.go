package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserIDContextKey ContextKey = "userID"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens        *TokenService
	adminPassHash string
	corsOrigins   []string
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *TokenService, adminPassHash string, corsOrigins []string) *Middleware {
	return &Middleware{
		tokens:        tokens,
		adminPassHash: adminPassHash,
		corsOrigins:   corsOrigins,
	}
}

// RequireUser requires a valid bearer token and puts the user id on the
// request context
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondWithError(w, http.StatusUnauthorized, "missing bearer token", "", nil)
			return
		}

		userID, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid token", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin checks the admin password sent in the X-Admin-Password header
// against the configured bcrypt hash. With no hash configured the admin
// surface is closed.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.adminPassHash == "" {
			respondWithError(w, http.StatusForbidden, "admin access not configured", "", nil)
			return
		}

		password := r.Header.Get("X-Admin-Password")
		if err := bcrypt.CompareHashAndPassword([]byte(m.adminPassHash), []byte(password)); err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid admin credentials", "", nil)
			return
		}

		next(w, r)
	}
}

// CORS answers preflight requests and sets the allow-origin headers for the
// configured origins. "*" allows any origin.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && m.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Password")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) originAllowed(origin string) bool {
	for _, allowed := range m.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Logging logs every request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// userIDFromContext retrieves the authenticated user id from the request context
func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDContextKey).(string)
	return userID
}
