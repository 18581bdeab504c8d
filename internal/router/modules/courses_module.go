package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/repository"
	handlers "github.com/campdir/campdir-api/internal/interface/http"
	"github.com/campdir/campdir-api/internal/interface/middleware"
	"github.com/campdir/campdir-api/pkg/helpers"
)

// CoursesModule wires the course routes, both the top-level collection and
// the nested listing/creation under a parent bootcamp.
type CoursesModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewCoursesModule(h *handlers.CourseHandler, jwt *helpers.JWTManager, users repository.UserRepository) *CoursesModule {
	return &CoursesModule{Handler: h, JWT: jwt, Users: users}
}

func (m *CoursesModule) Register(rg *gin.RouterGroup) {
	rg.GET("/courses", m.Handler.List)
	rg.GET("/courses/:id", m.Handler.Get)
	rg.GET("/bootcamps/:id/courses", m.Handler.List)

	mutate := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)
	protect := middleware.Protect(m.JWT, m.Users)

	rg.POST("/bootcamps/:id/courses", protect, mutate, m.Handler.Create)
	rg.PUT("/courses/:id", protect, mutate, m.Handler.Update)
	rg.DELETE("/courses/:id", protect, mutate, m.Handler.Delete)
}
