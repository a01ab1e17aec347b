package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"elevateu/internal/models"
	"elevateu/internal/repository"
	"elevateu/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextUserKey is the gin context key under which the authenticated user
// is stored by RequireAuth.
const ContextUserKey = "current_user"

// The three ways token resolution can fail. All of them surface as 401 to
// the client, but they stay distinct internally so the malformed-claims and
// missing-user checks cannot be silently skipped.
var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrMalformedClaims = errors.New("invalid token payload")
	ErrUnknownUser     = errors.New("user not found")
)

// RequireAuth creates a Gin middleware that authenticates requests via a
// bearer token and resolves the token into a user record.
func RequireAuth(tokens *service.TokenManager, users repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		user, err := ResolveUser(c.Request.Context(), parts[1], tokens, users)
		if err != nil {
			if !isAuthError(err) {
				// Storage failures are not an auth outcome; a 401 here would
				// tell the client its token is bad when it is not.
				logger.Error("Failed to resolve user", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate request"})
				c.Abort()
				return
			}
			logger.Debug("Token resolution failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage(err)})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// ResolveUser turns a raw bearer token into the authenticated user's public
// fields. Failures map to one of the sentinel errors above.
func ResolveUser(ctx context.Context, tokenString string, tokens *service.TokenManager, users repository.UserRepository) (models.PublicUser, error) {
	claims := tokens.Verify(tokenString)
	if claims == nil {
		return models.PublicUser{}, ErrInvalidToken
	}

	if claims.UserID == 0 {
		return models.PublicUser{}, ErrMalformedClaims
	}

	user, err := users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.PublicUser{}, ErrUnknownUser
		}
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

func isAuthError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrMalformedClaims) ||
		errors.Is(err, ErrUnknownUser)
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, ErrMalformedClaims):
		return "Invalid token payload"
	case errors.Is(err, ErrUnknownUser):
		return "User not found"
	default:
		return "Invalid or expired token"
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) models.PublicUser {
	return c.MustGet(ContextUserKey).(models.PublicUser)
}
