package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/campdir/campdir-api/internal/application"
	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/internal/interface/middleware"
	"github.com/campdir/campdir-api/pkg/apperr"
	"github.com/campdir/campdir-api/pkg/response"
)

type BootcampHandler struct {
	Svc    *application.BootcampService
	Logger *logrus.Logger
}

func NewBootcampHandler(svc *application.BootcampService, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/bootcamps
//
// Supports field filters (including the [gt]/[gte]/[lt]/[lte]/[in]
// suffixes), select, sort, page and limit query parameters.
func (h *BootcampHandler) List(c *gin.Context) {
	spec := query.Parse(c.Request.URL.Query())
	rows, total, err := h.Svc.List(c.Request.Context(), spec)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.List(c, len(rows), response.Paginate(spec.Page, spec.Limit, total), rows)
}

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

type bootcampCreateRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGI      bool     `json:"accept_gi"`
}

// Create POST /api/v1/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req bootcampCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), application.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusCreated, b)
}

type bootcampUpdateRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=50"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Website       *string  `json:"website" binding:"omitempty,url"`
	Phone         *string  `json:"phone" binding:"omitempty,max=20"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGI      *bool    `json:"accept_gi"`
}

// Update PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	var req bootcampUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.BootcampUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

// Delete DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

// WithinRadius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) WithinRadius(c *gin.Context) {
	miles, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || miles <= 0 {
		_ = c.Error(apperr.BadRequest("Please provide a valid distance"))
		return
	}
	list, err := h.Svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), miles)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.List(c, len(list), nil, list)
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperr.BadRequest("Please upload a file"))
		return
	}
	name, err := h.Svc.UploadPhoto(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), file)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, http.StatusOK, name)
}

// Search GET /api/v1/bootcamps/search?q=...
func (h *BootcampHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		_ = c.Error(apperr.BadRequest("Please provide a search term"))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.List(c, len(hits), nil, hits)
}
