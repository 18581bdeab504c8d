package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/repository"
	handlers "github.com/campdir/campdir-api/internal/interface/http"
	"github.com/campdir/campdir-api/internal/interface/middleware"
	"github.com/campdir/campdir-api/pkg/helpers"
)

// UsersModule exposes user management to admins only.
type UsersModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewUsersModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users repository.UserRepository) *UsersModule {
	return &UsersModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UsersModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/users")
	admin.Use(
		middleware.Protect(m.JWT, m.Users),
		middleware.Authorize(entity.RoleAdmin),
	)
	{
		admin.GET("", m.Handler.List)
		admin.POST("", m.Handler.Create)
		admin.GET("/:id", m.Handler.Get)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
