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

const (
	cacheKeyProjects         = "portfolio:projects:all"
	cacheKeyProjectsFeatured = "portfolio:projects:featured"
)

type ProjectHandler struct {
	projects domain.ProjectRepository
	cache    *cache.Cache
	ttl      time.Duration
}

func NewProjectHandler(projects domain.ProjectRepository, ca *cache.Cache, ttl time.Duration) *ProjectHandler {
	return &ProjectHandler{projects: projects, cache: ca, ttl: ttl}
}

// List GET /api/projects?featured=true（公开）
func (h *ProjectHandler) List(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"
	items, err := h.loadAll(c, featuredOnly)
	if err != nil {
		response.Fail(c, apperror.Internal("list projects failed", err))
		return
	}
	if items == nil {
		items = []domain.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

func (h *ProjectHandler) loadAll(c *gin.Context, featuredOnly bool) ([]domain.Project, error) {
	ctx := c.Request.Context()
	if h.cache == nil {
		return h.projects.List(ctx, featuredOnly)
	}
	key := cacheKeyProjects
	if featuredOnly {
		key = cacheKeyProjectsFeatured
	}
	cached, err := cache.GetOrLoadJSON[[]domain.Project](h.cache, ctx, key, h.ttl,
		func(ctx context.Context) (*[]domain.Project, error) {
			p, e := h.projects.List(ctx, featuredOnly)
			if e != nil {
				return nil, e
			}
			return &p, nil
		})
	if err != nil || cached == nil {
		return nil, err
	}
	return *cached, nil
}

// Get GET /api/projects/:slug（公开）
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.projects.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, apperror.Internal("load project failed", err))
		return
	}
	if p == nil {
		response.Fail(c, apperror.NotFound("project not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

type projectCreateIn struct {
	Title        string   `json:"title" binding:"required"`
	Slug         string   `json:"slug" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Technologies []string `json:"technologies" binding:"required"`
	Image        *string  `json:"image"`
	LiveLink     *string  `json:"liveLink" binding:"omitempty,url"`
	RepoLink     *string  `json:"repoLink" binding:"omitempty,url"`
	Challenges   *string  `json:"challenges"`
	Improvements *string  `json:"improvements"`
	Featured     *bool    `json:"featured"`
	Order        *int     `json:"order"`
}

// Create POST /api/projects（admin）
func (h *ProjectHandler) Create(c *gin.Context) {
	var in projectCreateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	p := &domain.Project{
		ID:           utils.NewID(),
		Title:        in.Title,
		Slug:         in.Slug,
		Description:  in.Description,
		Technologies: in.Technologies,
		Image:        optString(in.Image),
		LiveLink:     optString(in.LiveLink),
		RepoLink:     optString(in.RepoLink),
		Challenges:   optString(in.Challenges),
		Improvements: optString(in.Improvements),
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
	if err := h.projects.Create(c.Request.Context(), p); err != nil {
		if domain.IsDupKey(err) {
			response.Fail(c, apperror.Conflict("slug already in use"))
			return
		}
		response.Fail(c, apperror.Internal("create project failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

type projectUpdateIn struct {
	Title        *string  `json:"title" binding:"omitempty,min=1"`
	Slug         *string  `json:"slug" binding:"omitempty,min=1"`
	Description  *string  `json:"description" binding:"omitempty,min=1"`
	Technologies []string `json:"technologies"`
	Image        *string  `json:"image"`
	LiveLink     *string  `json:"liveLink" binding:"omitempty,url"`
	RepoLink     *string  `json:"repoLink" binding:"omitempty,url"`
	Challenges   *string  `json:"challenges"`
	Improvements *string  `json:"improvements"`
	Featured     *bool    `json:"featured"`
	Order        *int     `json:"order"`
}

// Update PUT /api/projects/:id（admin）
func (h *ProjectHandler) Update(c *gin.Context) {
	p, err := h.projects.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load project failed", err))
		return
	}
	if p == nil {
		response.Fail(c, apperror.NotFound("project not found"))
		return
	}
	var in projectUpdateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Technologies != nil {
		p.Technologies = in.Technologies
	}
	if in.Image != nil {
		p.Image = optString(in.Image)
	}
	if in.LiveLink != nil {
		p.LiveLink = optString(in.LiveLink)
	}
	if in.RepoLink != nil {
		p.RepoLink = optString(in.RepoLink)
	}
	if in.Challenges != nil {
		p.Challenges = optString(in.Challenges)
	}
	if in.Improvements != nil {
		p.Improvements = optString(in.Improvements)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
	if err := h.projects.Update(c.Request.Context(), p); err != nil {
		if domain.IsDupKey(err) {
			response.Fail(c, apperror.Conflict("slug already in use"))
			return
		}
		response.Fail(c, apperror.Internal("update project failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"project": p})
}

// Delete DELETE /api/projects/:id（admin）
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == domain.ErrNotFound {
			response.Fail(c, apperror.NotFound("project not found"))
			return
		}
		response.Fail(c, apperror.Internal("delete project failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

func (h *ProjectHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), cacheKeyProjects, cacheKeyProjectsFeatured)
	}
}
