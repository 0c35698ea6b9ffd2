package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/core/cache"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/transport/http/response"
	"portfolio-backend/pkg/utils"
)

const cacheKeySkills = "portfolio:skills"

type SkillHandler struct {
	skills domain.SkillRepository
	cache  *cache.Cache
	ttl    time.Duration
}

func NewSkillHandler(skills domain.SkillRepository, ca *cache.Cache, ttl time.Duration) *SkillHandler {
	return &SkillHandler{skills: skills, cache: ca, ttl: ttl}
}

// List GET /api/skills（公开）
func (h *SkillHandler) List(c *gin.Context) {
	items, err := h.loadAll(c)
	if err != nil {
		response.Fail(c, apperror.Internal("list skills failed", err))
		return
	}
	if items == nil {
		items = []domain.Skill{}
	}
	c.JSON(http.StatusOK, gin.H{"skills": items})
}

func (h *SkillHandler) loadAll(c *gin.Context) ([]domain.Skill, error) {
	ctx := c.Request.Context()
	if h.cache == nil {
		return h.skills.List(ctx)
	}
	cached, err := cache.GetOrLoadJSON[[]domain.Skill](h.cache, ctx, cacheKeySkills, h.ttl,
		func(ctx context.Context) (*[]domain.Skill, error) {
			s, e := h.skills.List(ctx)
			if e != nil {
				return nil, e
			}
			return &s, nil
		})
	if err != nil || cached == nil {
		return nil, err
	}
	return *cached, nil
}

// Get GET /api/skills/:id（公开）
func (h *SkillHandler) Get(c *gin.Context) {
	s, err := h.skills.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load skill failed", err))
		return
	}
	if s == nil {
		response.Fail(c, apperror.NotFound("skill not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill": s})
}

type skillCreateIn struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Proficiency *int    `json:"proficiency" binding:"required,min=0,max=100"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
}

// Create POST /api/skills（admin）
func (h *SkillHandler) Create(c *gin.Context) {
	var in skillCreateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	s := &domain.Skill{
		ID:          utils.NewID(),
		Name:        in.Name,
		Category:    in.Category,
		Proficiency: *in.Proficiency,
		Icon:        optString(in.Icon),
	}
	if in.Order != nil {
		s.Order = *in.Order
	}
	if err := h.skills.Create(c.Request.Context(), s); err != nil {
		response.Fail(c, apperror.Internal("create skill failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"skill": s})
}

type skillUpdateIn struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Category    *string `json:"category" binding:"omitempty,min=1"`
	Proficiency *int    `json:"proficiency" binding:"omitempty,min=0,max=100"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
}

// Update PUT /api/skills/:id（admin）
func (h *SkillHandler) Update(c *gin.Context) {
	s, err := h.skills.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load skill failed", err))
		return
	}
	if s == nil {
		response.Fail(c, apperror.NotFound("skill not found"))
		return
	}
	var in skillUpdateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Proficiency != nil {
		s.Proficiency = *in.Proficiency
	}
	if in.Icon != nil {
		s.Icon = optString(in.Icon)
	}
	if in.Order != nil {
		s.Order = *in.Order
	}
	if err := h.skills.Update(c.Request.Context(), s); err != nil {
		response.Fail(c, apperror.Internal("update skill failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"skill": s})
}

// Delete DELETE /api/skills/:id（admin）
func (h *SkillHandler) Delete(c *gin.Context) {
	if err := h.skills.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == domain.ErrNotFound {
			response.Fail(c, apperror.NotFound("skill not found"))
			return
		}
		response.Fail(c, apperror.Internal("delete skill failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "skill deleted successfully"})
}

func (h *SkillHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), cacheKeySkills)
	}
}
