package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/transport/http/response"
)

type StatsHandler struct {
	projects domain.ProjectRepository
	skills   domain.SkillRepository
	blog     domain.BlogRepository
	contacts domain.ContactRepository
}

func NewStatsHandler(
	projects domain.ProjectRepository,
	skills domain.SkillRepository,
	blog domain.BlogRepository,
	contacts domain.ContactRepository,
) *StatsHandler {
	return &StatsHandler{projects: projects, skills: skills, blog: blog, contacts: contacts}
}

// Get GET /api/stats（admin），几个计数并发取
func (h *StatsHandler) Get(c *gin.Context) {
	var projects, skills, blogs, unread, total int64

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) { projects, err = h.projects.Count(ctx); return })
	g.Go(func() (err error) { skills, err = h.skills.Count(ctx); return })
	g.Go(func() (err error) { blogs, err = h.blog.CountPosts(ctx); return })
	g.Go(func() (err error) { unread, err = h.contacts.Count(ctx, true); return })
	g.Go(func() (err error) { total, err = h.contacts.Count(ctx, false); return })
	if err := g.Wait(); err != nil {
		response.Fail(c, apperror.Internal("load stats failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": gin.H{
		"projects":      projects,
		"skills":        skills,
		"blogs":         blogs,
		"messages":      unread,
		"totalMessages": total,
	}})
}
