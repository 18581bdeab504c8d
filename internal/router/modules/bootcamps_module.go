package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/repository"
	handlers "github.com/campdir/campdir-api/internal/interface/http"
	"github.com/campdir/campdir-api/internal/interface/middleware"
	"github.com/campdir/campdir-api/pkg/helpers"
)

// BootcampsModule wires the bootcamp routes.
// Reads are public; mutations require a publisher or admin identity.
type BootcampsModule struct {
	Handler *handlers.BootcampHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewBootcampsModule(h *handlers.BootcampHandler, jwt *helpers.JWTManager, users repository.UserRepository) *BootcampsModule {
	return &BootcampsModule{Handler: h, JWT: jwt, Users: users}
}

func (m *BootcampsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/bootcamps", m.Handler.List)
	rg.GET("/bootcamps/search", m.Handler.Search)
	rg.GET("/bootcamps/radius/:zipcode/:distance", m.Handler.WithinRadius)
	rg.GET("/bootcamps/:id", m.Handler.Get)

	protected := rg.Group("/bootcamps")
	protected.Use(
		middleware.Protect(m.JWT, m.Users),
		middleware.Authorize(entity.RolePublisher, entity.RoleAdmin),
	)
	{
		protected.POST("", m.Handler.Create)
		protected.PUT("/:id", m.Handler.Update)
		protected.DELETE("/:id", m.Handler.Delete)
		protected.PUT("/:id/photo", m.Handler.UploadPhoto)
	}
}
