package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"carspace/config"
	"carspace/internal/domain"
	"carspace/internal/middleware"
	"carspace/internal/services"
	carspace_errors "carspace/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users == nil {
		r.users = make(map[uuid.UUID]domain.User)
	}
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, carspace_errors.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, carspace_errors.ErrNotFound
}

func setupRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := services.NewAuthService(&stubUserRepo{}, &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 5,
	})

	router := gin.New()
	router.GET("/whoami", middleware.AuthMiddleware(authService), func(c *gin.Context) {
		id, _ := services.IdentityFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID.String(), "role": id.Role})
	})
	router.GET("/staff", middleware.AuthMiddleware(authService), middleware.RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, authService
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router, authService := setupRouter(t)

	resp, err := authService.Register(context.Background(), services.RegisterInput{
		Email:       "user@example.com",
		Password:    "correct-horse",
		DisplayName: "User",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), resp.User.ID)
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	router, _ := setupRouter(t)

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireStaffBlocksRegularUsers(t *testing.T) {
	router, authService := setupRouter(t)

	resp, err := authService.Register(context.Background(), services.RegisterInput{
		Email:       "user@example.com",
		Password:    "correct-horse",
		DisplayName: "User",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
