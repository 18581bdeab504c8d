package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/pkg/apperr"
	"github.com/campdir/campdir-api/pkg/helpers"
)

type stubLoader struct {
	users map[string]*entity.User
}

func (s *stubLoader) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User", id)
}

func protectedRouter(t *testing.T, jwt *helpers.JWTManager, users IdentityLoader, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{Protect(jwt, users)}
	if len(roles) > 0 {
		chain = append(chain, Authorize(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		u := CurrentUser(c)
		require.NotNil(t, u)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	r.GET("/secret", chain...)
	return r
}

func TestProtect(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	loader := &stubLoader{users: map[string]*entity.User{
		"u1": {ID: "u1", Role: entity.RolePublisher},
	}}
	r := protectedRouter(t, jwt, loader)

	token, _, err := jwt.Issue("u1")
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not authorized to access this route")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		ghost, _, err := jwt.Issue("gone")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", "Bearer "+ghost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthorize(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	loader := &stubLoader{users: map[string]*entity.User{
		"pub":  {ID: "pub", Role: entity.RolePublisher},
		"user": {ID: "user", Role: entity.RoleUser},
	}}
	r := protectedRouter(t, jwt, loader, entity.RolePublisher, entity.RoleAdmin)

	t.Run("allowed role", func(t *testing.T) {
		token, _, err := jwt.Issue("pub")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden role names the role", func(t *testing.T) {
		token, _, err := jwt.Issue("user")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "User role 'user' is not authorized to access this route")
	})
}
