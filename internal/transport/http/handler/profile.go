package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/core/cache"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/transport/http/response"
	"portfolio-backend/pkg/utils"
)

const cacheKeyProfile = "portfolio:profile"

type ProfileHandler struct {
	profiles domain.ProfileRepository
	cache    *cache.Cache // 可为 nil
	ttl      time.Duration
}

func NewProfileHandler(profiles domain.ProfileRepository, ca *cache.Cache, ttl time.Duration) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, cache: ca, ttl: ttl}
}

func (h *ProfileHandler) load(c *gin.Context) (*domain.Profile, error) {
	if h.cache == nil {
		return h.profiles.First(c.Request.Context())
	}
	return cache.GetOrLoadJSON[domain.Profile](h.cache, c.Request.Context(), cacheKeyProfile, h.ttl, h.profiles.First)
}

// Get GET /api/profile（公开）
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.load(c)
	if err != nil {
		response.Fail(c, apperror.Internal("load profile failed", err))
		return
	}
	if p == nil {
		response.Fail(c, apperror.NotFound("profile not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

type profileCreateIn struct {
	Name        string           `json:"name" binding:"required"`
	Email       string           `json:"email" binding:"required,email"`
	Designation string           `json:"designation" binding:"required"`
	Bio         string           `json:"bio" binding:"required"`
	Phone       *string          `json:"phone"`
	ResumeURL   *string          `json:"resumeUrl" binding:"omitempty,url"`
	PhotoURL    *string          `json:"photoUrl" binding:"omitempty,url"`
	SocialLinks domain.StringMap `json:"socialLinks"`
}

// Create POST /api/profile（admin；已存在则 400）
func (h *ProfileHandler) Create(c *gin.Context) {
	existing, err := h.profiles.First(c.Request.Context())
	if err != nil {
		response.Fail(c, apperror.Internal("load profile failed", err))
		return
	}
	if existing != nil {
		response.Fail(c, apperror.BadRequest("profile already exists, use PUT to update"))
		return
	}
	var in profileCreateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	if verr := validateSocialLinks(in.SocialLinks); verr != nil {
		response.Fail(c, verr)
		return
	}
	p := &domain.Profile{
		ID:          utils.NewID(),
		Name:        in.Name,
		Email:       in.Email,
		Designation: in.Designation,
		Bio:         in.Bio,
		Phone:       optString(in.Phone),
		ResumeURL:   optString(in.ResumeURL),
		PhotoURL:    optString(in.PhotoURL),
		SocialLinks: in.SocialLinks,
	}
	if err := h.profiles.Create(c.Request.Context(), p); err != nil {
		response.Fail(c, apperror.Internal("create profile failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"profile": p})
}

type profileUpdateIn struct {
	Name        *string          `json:"name" binding:"omitempty,min=1"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	Designation *string          `json:"designation" binding:"omitempty,min=1"`
	Bio         *string          `json:"bio" binding:"omitempty,min=1"`
	Phone       *string          `json:"phone"`
	ResumeURL   *string          `json:"resumeUrl" binding:"omitempty,url"`
	PhotoURL    *string          `json:"photoUrl" binding:"omitempty,url"`
	SocialLinks domain.StringMap `json:"socialLinks"`
}

// Update PUT /api/profile（admin；不存在则 404）
func (h *ProfileHandler) Update(c *gin.Context) {
	p, err := h.profiles.First(c.Request.Context())
	if err != nil {
		response.Fail(c, apperror.Internal("load profile failed", err))
		return
	}
	if p == nil {
		response.Fail(c, apperror.NotFound("profile not found, create one first"))
		return
	}
	var in profileUpdateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	if verr := validateSocialLinks(in.SocialLinks); verr != nil {
		response.Fail(c, verr)
		return
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Designation != nil {
		p.Designation = *in.Designation
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Phone != nil {
		p.Phone = optString(in.Phone)
	}
	if in.ResumeURL != nil {
		p.ResumeURL = optString(in.ResumeURL)
	}
	if in.PhotoURL != nil {
		p.PhotoURL = optString(in.PhotoURL)
	}
	if in.SocialLinks != nil {
		p.SocialLinks = in.SocialLinks
	}
	if err := h.profiles.Update(c.Request.Context(), p); err != nil {
		response.Fail(c, apperror.Internal("update profile failed", err))
		return
	}
	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *ProfileHandler) invalidate(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), cacheKeyProfile)
	}
}
