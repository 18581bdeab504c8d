package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/pkg/apperr"
	"github.com/campdir/campdir-api/pkg/helpers"
	"github.com/campdir/campdir-api/pkg/response"
)

// Context keys set once the request identity is resolved.
const (
	CtxUserKey   = "currentUser"
	CtxUserIDKey = "userID"
)

// IdentityLoader resolves a token's user id to a live account. A token whose
// user no longer exists is rejected.
type IdentityLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

const notAuthorized = "Not authorized to access this route"

// Protect authenticates the request from an Authorization bearer header or
// the token cookie, verifies the token, and attaches the resolved user to
// the context.
func Protect(jwt *helpers.JWTManager, users IdentityLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = helpers.TokenFromCookie(c)
		}
		if token == "" {
			abortUnauthorized(c)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// Authorize gates a protected route to the given roles. Must run after
// Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			abortUnauthorized(c)
			return
		}
		if !allowed[u.Role] {
			response.Fail(c, 403, "User role '"+u.Role+"' is not authorized to access this route")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity attached by Protect, nil on public
// routes.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	status, msg := apperr.Normalize(apperr.Unauthorized(notAuthorized))
	response.Fail(c, status, msg)
	c.Abort()
}
