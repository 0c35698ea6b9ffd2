package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/transport/http/response"
	"portfolio-backend/pkg/utils"
)

type ExperienceHandler struct {
	experiences domain.ExperienceRepository
}

func NewExperienceHandler(experiences domain.ExperienceRepository) *ExperienceHandler {
	return &ExperienceHandler{experiences: experiences}
}

// List GET /api/experience（公开）
func (h *ExperienceHandler) List(c *gin.Context) {
	items, err := h.experiences.List(c.Request.Context())
	if err != nil {
		response.Fail(c, apperror.Internal("list experiences failed", err))
		return
	}
	if items == nil {
		items = []domain.Experience{}
	}
	c.JSON(http.StatusOK, gin.H{"experiences": items})
}

// Get GET /api/experience/:id（公开）
func (h *ExperienceHandler) Get(c *gin.Context) {
	e, err := h.experiences.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load experience failed", err))
		return
	}
	if e == nil {
		response.Fail(c, apperror.NotFound("experience not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": e})
}

type experienceCreateIn struct {
	Company     string  `json:"company" binding:"required"`
	Role        string  `json:"role" binding:"required"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description" binding:"required"`
	Current     *bool   `json:"current"`
	Order       *int    `json:"order"`
}

// Create POST /api/experience（admin）
func (h *ExperienceHandler) Create(c *gin.Context) {
	var in experienceCreateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	start, err := parseDate(in.StartDate)
	if err != nil {
		response.Fail(c, apperror.Validation(apperror.FieldViolation{Field: "startDate", Message: "must be a valid date"}))
		return
	}
	e := &domain.Experience{
		ID:          utils.NewID(),
		Company:     in.Company,
		Role:        in.Role,
		StartDate:   start,
		Description: in.Description,
	}
	if in.EndDate != nil && *in.EndDate != "" {
		end, err := parseDate(*in.EndDate)
		if err != nil {
			response.Fail(c, apperror.Validation(apperror.FieldViolation{Field: "endDate", Message: "must be a valid date"}))
			return
		}
		e.EndDate = &end
	}
	if in.Current != nil {
		e.Current = *in.Current
	}
	if in.Order != nil {
		e.Order = *in.Order
	}
	if err := h.experiences.Create(c.Request.Context(), e); err != nil {
		response.Fail(c, apperror.Internal("create experience failed", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"experience": e})
}

type experienceUpdateIn struct {
	Company     *string `json:"company" binding:"omitempty,min=1"`
	Role        *string `json:"role" binding:"omitempty,min=1"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Current     *bool   `json:"current"`
	Order       *int    `json:"order"`
}

// Update PUT /api/experience/:id（admin）
func (h *ExperienceHandler) Update(c *gin.Context) {
	e, err := h.experiences.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load experience failed", err))
		return
	}
	if e == nil {
		response.Fail(c, apperror.NotFound("experience not found"))
		return
	}
	var in experienceUpdateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	if in.Company != nil {
		e.Company = *in.Company
	}
	if in.Role != nil {
		e.Role = *in.Role
	}
	if in.StartDate != nil {
		start, err := parseDate(*in.StartDate)
		if err != nil {
			response.Fail(c, apperror.Validation(apperror.FieldViolation{Field: "startDate", Message: "must be a valid date"}))
			return
		}
		e.StartDate = start
	}
	if in.EndDate != nil {
		if *in.EndDate == "" {
			e.EndDate = nil // 显式清空表示仍在职
		} else {
			end, err := parseDate(*in.EndDate)
			if err != nil {
				response.Fail(c, apperror.Validation(apperror.FieldViolation{Field: "endDate", Message: "must be a valid date"}))
				return
			}
			e.EndDate = &end
		}
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Current != nil {
		e.Current = *in.Current
	}
	if in.Order != nil {
		e.Order = *in.Order
	}
	if err := h.experiences.Update(c.Request.Context(), e); err != nil {
		response.Fail(c, apperror.Internal("update experience failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": e})
}

// Delete DELETE /api/experience/:id（admin）
func (h *ExperienceHandler) Delete(c *gin.Context) {
	if err := h.experiences.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == domain.ErrNotFound {
			response.Fail(c, apperror.NotFound("experience not found"))
			return
		}
		response.Fail(c, apperror.Internal("delete experience failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "experience deleted successfully"})
}
