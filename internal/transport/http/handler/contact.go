package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/transport/http/response"
	"portfolio-backend/pkg/utils"
)

type ContactHandler struct {
	contacts domain.ContactRepository
}

func NewContactHandler(contacts domain.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type contactCreateIn struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Subject *string `json:"subject"`
	Message string  `json:"message" binding:"required,min=10"`
}

// Submit POST /api/contact（公开）
func (h *ContactHandler) Submit(c *gin.Context) {
	var in contactCreateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	m := &domain.Contact{
		ID:      utils.NewID(),
		Name:    in.Name,
		Email:   in.Email,
		Subject: optString(in.Subject),
		Message: in.Message,
	}
	if err := h.contacts.Create(c.Request.Context(), m); err != nil {
		response.Fail(c, apperror.Internal("save message failed", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "message sent successfully",
		"id":      m.ID,
	})
}

// List GET /api/contact?unread=true（admin）
func (h *ContactHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	items, err := h.contacts.List(c.Request.Context(), unreadOnly)
	if err != nil {
		response.Fail(c, apperror.Internal("list messages failed", err))
		return
	}
	if items == nil {
		items = []domain.Contact{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": items})
}

// MarkRead PUT /api/contact/:id/read（admin；重复标记幂等）
func (h *ContactHandler) MarkRead(c *gin.Context) {
	m, err := h.contacts.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load message failed", err))
		return
	}
	if m == nil {
		response.Fail(c, apperror.NotFound("message not found"))
		return
	}
	if !m.Read {
		m.Read = true
		if err := h.contacts.Update(c.Request.Context(), m); err != nil {
			response.Fail(c, apperror.Internal("update message failed", err))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"contact": m})
}

// Delete DELETE /api/contact/:id（admin）
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == domain.ErrNotFound {
			response.Fail(c, apperror.NotFound("message not found"))
			return
		}
		response.Fail(c, apperror.Internal("delete message failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}
