package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"elevateu/internal/config"
	"elevateu/internal/models"
	"elevateu/internal/repository"
	"elevateu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	users  map[int64]*models.User
	getErr error
}

func (f *fakeUserRepo) CreateWithStats(context.Context, *models.User) error { return nil }
func (f *fakeUserRepo) List(context.Context) ([]models.User, error)        { return nil, nil }
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func newTokenManager(t *testing.T) *service.TokenManager {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.SecretKey = "test-secret"
	cfg.Auth.TokenTTLMinutes = 60
	return service.NewTokenManager(cfg)
}

func newAuthRouter(tokens *service.TokenManager, users repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(tokens, users, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c)})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter(newTokenManager(t), &fakeUserRepo{})

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestRequireAuth_BadScheme(t *testing.T) {
	router := newAuthRouter(newTokenManager(t), &fakeUserRepo{})

	w := doRequest(router, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router := newAuthRouter(newTokenManager(t), &fakeUserRepo{})

	w := doRequest(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireAuth_MalformedClaims(t *testing.T) {
	tokens := newTokenManager(t)
	router := newAuthRouter(tokens, &fakeUserRepo{})

	// A validly signed token without a user id must still be rejected.
	tokenString, _, err := tokens.Issue(0, "a@b.com")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+tokenString)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token payload")
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	tokens := newTokenManager(t)
	router := newAuthRouter(tokens, &fakeUserRepo{users: map[int64]*models.User{}})

	tokenString, _, err := tokens.Issue(42, "a@b.com")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+tokenString)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestRequireAuth_StorageFailure(t *testing.T) {
	tokens := newTokenManager(t)
	repo := &fakeUserRepo{getErr: errors.New("db down")}
	router := newAuthRouter(tokens, repo)

	// A storage outage behind a validly signed token is an internal failure,
	// not an auth outcome: the client must not be told its token is bad.
	tokenString, _, err := tokens.Issue(42, "a@b.com")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+tokenString)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireAuth_Success(t *testing.T) {
	tokens := newTokenManager(t)
	repo := &fakeUserRepo{users: map[int64]*models.User{
		42: {ID: 42, Name: "Alice", Email: "a@b.com", PasswordHash: "hash"},
	}}
	router := newAuthRouter(tokens, repo)

	tokenString, _, err := tokens.Issue(42, "a@b.com")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+tokenString)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alice"`)
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestResolveUser_ErrorVariants(t *testing.T) {
	tokens := newTokenManager(t)
	repo := &fakeUserRepo{users: map[int64]*models.User{}}

	_, err := ResolveUser(context.Background(), "garbage", tokens, repo)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noID, _, err := tokens.Issue(0, "a@b.com")
	require.NoError(t, err)
	_, err = ResolveUser(context.Background(), noID, tokens, repo)
	assert.ErrorIs(t, err, ErrMalformedClaims)

	missing, _, err := tokens.Issue(7, "a@b.com")
	require.NoError(t, err)
	_, err = ResolveUser(context.Background(), missing, tokens, repo)
	assert.ErrorIs(t, err, ErrUnknownUser)
}
