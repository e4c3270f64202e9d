package handlers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks
var ErrInvalidToken = errors.New("invalid token")

// tokenTTL is long on purpose: the token is the device's only identity, and
// losing it means losing the nickname and test history tied to it.
const tokenTTL = 365 * 24 * time.Hour

// TokenService issues and verifies the HMAC-signed tokens that carry a
// visitor's anonymous user id. There is no password; possession of the token
// is the identity.
type TokenService struct {
	hmac []byte
}

// NewTokenService creates a token service signing with the given secret
func NewTokenService(secret string) *TokenService {
	return &TokenService{hmac: []byte(secret)}
}

type userClaims struct {
	jwt.RegisteredClaims
}

// Issue mints a fresh user id and wraps it in a signed token
func (t *TokenService) Issue() (userID, token string, err error) {
	userID = uuid.New().String()
	now := time.Now()
	claims := &userClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "vocaday",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.hmac)
	return userID, token, err
}

// Parse verifies a token and returns the user id it carries
func (t *TokenService) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &userClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return t.hmac, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*userClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
