package service

import (
	"time"

	"elevateu/internal/config"
	"elevateu/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies stateless HS256 bearer tokens. It is
// built once at startup from config and never mutated afterwards.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Auth.SecretKey),
		ttl:    time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
	}
}

// Issue signs a token carrying the user's identity, valid for the configured TTL.
func (m *TokenManager) Issue(userID int64, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks the token's signature and expiry and returns the decoded
// claims, or nil if the token is invalid for any reason. Callers never need
// to distinguish why verification failed.
func (m *TokenManager) Verify(tokenString string) *models.Claims {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
