package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domain"
)

type fakeProfileRepo struct {
	p *domain.Profile
}

func (f *fakeProfileRepo) First(_ context.Context) (*domain.Profile, error) {
	if f.p == nil {
		return nil, nil
	}
	cp := *f.p
	return &cp, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	f.p = p
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	f.p = p
	return nil
}

func newProfileRouter(repo domain.ProfileRepository) *gin.Engine {
	h := NewProfileHandler(repo, nil, 0)
	r := gin.New()
	r.GET("/api/profile", h.Get)
	r.POST("/api/profile", withPrincipal(adminPrincipal()), h.Create)
	r.PUT("/api/profile", withPrincipal(adminPrincipal()), h.Update)
	return r
}

func TestProfileGetNotFound(t *testing.T) {
	r := newProfileRouter(&fakeProfileRepo{})
	w := doJSON(t, r, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileCreate(t *testing.T) {
	repo := &fakeProfileRepo{}
	r := newProfileRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/profile", gin.H{
		"name":        "Jane Doe",
		"email":       "jane@example.com",
		"designation": "Full Stack Developer",
		"bio":         "I build things.",
		"socialLinks": gin.H{"github": "https://github.com/jane"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.p)
	assert.Equal(t, "Jane Doe", repo.p.Name)
}

func TestProfileCreateWhenExists(t *testing.T) {
	repo := &fakeProfileRepo{p: &domain.Profile{ID: "p-1", Name: "Jane"}}
	r := newProfileRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/profile", gin.H{
		"name":        "Other",
		"email":       "other@example.com",
		"designation": "Dev",
		"bio":         "bio",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "profile already exists, use PUT to update", decodeBody(t, w)["error"])
	assert.Equal(t, "Jane", repo.p.Name)
}

func TestProfileCreateUnknownSocialPlatform(t *testing.T) {
	repo := &fakeProfileRepo{}
	r := newProfileRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/profile", gin.H{
		"name":        "Jane",
		"email":       "jane@example.com",
		"designation": "Dev",
		"bio":         "bio",
		"socialLinks": gin.H{"myspace": "https://myspace.com/jane"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.p)
}

func TestProfileUpdateWhenMissing(t *testing.T) {
	r := newProfileRouter(&fakeProfileRepo{})
	w := doJSON(t, r, http.MethodPut, "/api/profile", gin.H{"name": "Jane"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileUpdatePartial(t *testing.T) {
	phone := "12345"
	repo := &fakeProfileRepo{p: &domain.Profile{
		ID: "p-1", Name: "Jane", Email: "jane@example.com",
		Designation: "Dev", Bio: "old bio", Phone: &phone,
	}}
	r := newProfileRouter(repo)

	w := doJSON(t, r, http.MethodPut, "/api/profile", gin.H{"bio": "new bio"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "new bio", repo.p.Bio)
	assert.Equal(t, "Jane", repo.p.Name)
	require.NotNil(t, repo.p.Phone)
	assert.Equal(t, "12345", *repo.p.Phone)
}
