package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campdir/campdir-api/internal/application"
	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/internal/interface/middleware"
	"github.com/campdir/campdir-api/pkg/response"
)

type CourseHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewCourseHandler(svc *application.CourseService, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/courses and GET /api/v1/bootcamps/:id/courses
//
// When mounted under a bootcamp the results are scoped to that parent and
// pagination is skipped, mirroring the top-level advanced listing otherwise.
func (h *CourseHandler) List(c *gin.Context) {
	spec := query.Parse(c.Request.URL.Query())

	if bootcampID := c.Param("id"); bootcampID != "" {
		rows, _, err := h.Svc.ListByBootcamp(c.Request.Context(), bootcampID, spec)
		if err != nil {
			_ = c.Error(err)
			return
		}
		response.List(c, len(rows), nil, rows)
		return
	}

	rows, total, err := h.Svc.List(c.Request.Context(), spec)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.List(c, len(rows), response.Paginate(spec.Page, spec.Limit, total), rows)
}

// Get GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

type courseCreateRequest struct {
	Title                string `json:"title" binding:"required"`
	Description          string `json:"description" binding:"required"`
	Weeks                int    `json:"weeks" binding:"required,gt=0"`
	Tuition              int    `json:"tuition" binding:"required,gte=0"`
	MinimumSkill         string `json:"minimum_skill" binding:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool   `json:"scholarship_available"`
}

// Create POST /api/v1/bootcamps/:id/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.CourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusCreated, course)
}

type courseUpdateRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Weeks                *int    `json:"weeks" binding:"omitempty,gt=0"`
	Tuition              *int    `json:"tuition" binding:"omitempty,gte=0"`
	MinimumSkill         *string `json:"minimum_skill" binding:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool   `json:"scholarship_available"`
}

// Update PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var req courseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.CourseUpdate{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

// Delete DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
