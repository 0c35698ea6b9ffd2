package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/transport/http/middleware"
	"portfolio-backend/internal/transport/http/response"
)

type AuthHandler struct {
	users domain.UserRepository
}

func NewAuthHandler(users domain.UserRepository) *AuthHandler {
	return &AuthHandler{users: users}
}

type userOut struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	PhotoURL  *string   `json:"photoUrl"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func projectUser(u *domain.User) userOut {
	return userOut{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		PhotoURL:  u.PhotoURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Sync POST /api/auth/sync；对齐已在中间件完成，这里只回投影
func (h *AuthHandler) Sync(c *gin.Context) {
	h.Me(c)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	p := middleware.Principal(c)
	u, err := h.users.FindByID(c.Request.Context(), p.UserID)
	if err != nil {
		response.Fail(c, apperror.Internal("load user failed", err))
		return
	}
	if u == nil {
		response.Fail(c, apperror.NotFound("user not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": projectUser(u)})
}

type updateSelfIn struct {
	Name     *string `json:"name" binding:"omitempty,max=64"`
	PhotoURL *string `json:"photoUrl" binding:"omitempty,url"`
}

// UpdateProfile PUT /api/auth/profile 自助更新 name/photoUrl
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in updateSelfIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	p := middleware.Principal(c)
	u, err := h.users.FindByID(c.Request.Context(), p.UserID)
	if err != nil {
		response.Fail(c, apperror.Internal("load user failed", err))
		return
	}
	if u == nil {
		response.Fail(c, apperror.NotFound("user not found"))
		return
	}
	if in.Name != nil {
		u.Name = optString(in.Name)
	}
	if in.PhotoURL != nil {
		u.PhotoURL = optString(in.PhotoURL)
	}
	if err := h.users.Update(c.Request.Context(), u); err != nil {
		response.Fail(c, apperror.Internal("update profile failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": projectUser(u)})
}
