package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domain"
)

type fakeProjectRepo struct {
	items map[string]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{items: map[string]*domain.Project{}}
}

func (f *fakeProjectRepo) List(_ context.Context, featuredOnly bool) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(f.items))
	for _, p := range f.items {
		if featuredOnly && !p.Featured {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeProjectRepo) FindBySlug(_ context.Context, slug string) (*domain.Project, error) {
	for _, p := range f.items {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) Create(_ context.Context, p *domain.Project) error {
	for _, exist := range f.items {
		if exist.Slug == p.Slug {
			return errors.New("UNIQUE constraint failed: projects.slug duplicate")
		}
	}
	f.items[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *domain.Project) error {
	for _, exist := range f.items {
		if exist.ID != p.ID && exist.Slug == p.Slug {
			return errors.New("UNIQUE constraint failed: projects.slug duplicate")
		}
	}
	f.items[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func newProjectRouter(repo domain.ProjectRepository) *gin.Engine {
	h := NewProjectHandler(repo, nil, 0)
	r := gin.New()
	r.GET("/api/projects", h.List)
	r.GET("/api/projects/:slug", h.Get)
	r.POST("/api/projects", withPrincipal(adminPrincipal()), h.Create)
	r.PUT("/api/projects/:id", withPrincipal(adminPrincipal()), h.Update)
	r.DELETE("/api/projects/:id", withPrincipal(adminPrincipal()), h.Delete)
	return r
}

func TestProjectListFeaturedFilter(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.items["p-1"] = &domain.Project{ID: "p-1", Title: "A", Slug: "a", Featured: true, Order: 1}
	repo.items["p-2"] = &domain.Project{ID: "p-2", Title: "B", Slug: "b", Order: 2}
	r := newProjectRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["projects"].([]any), 2)

	w = doJSON(t, r, http.MethodGet, "/api/projects?featured=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	projects := decodeBody(t, w)["projects"].([]any)
	require.Len(t, projects, 1)
	assert.Equal(t, "a", projects[0].(map[string]any)["slug"])
}

func TestProjectCreate(t *testing.T) {
	repo := newFakeProjectRepo()
	r := newProjectRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{
		"title":        "Portfolio",
		"slug":         "portfolio",
		"description":  "my site",
		"technologies": []string{"Go", "Gin"},
		"liveLink":     "https://example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	p := decodeBody(t, w)["project"].(map[string]any)
	assert.Equal(t, "portfolio", p["slug"])
	assert.Len(t, repo.items, 1)
}

func TestProjectCreateBadURL(t *testing.T) {
	r := newProjectRouter(newFakeProjectRepo())
	w := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{
		"title":        "Portfolio",
		"slug":         "portfolio",
		"description":  "my site",
		"technologies": []string{"Go"},
		"liveLink":     "not a url",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectCreateDuplicateSlug(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.items["p-1"] = &domain.Project{ID: "p-1", Title: "A", Slug: "taken"}
	r := newProjectRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{
		"title":        "B",
		"slug":         "taken",
		"description":  "d",
		"technologies": []string{"Go"},
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slug already in use", decodeBody(t, w)["error"])
}

func TestProjectGetBySlug(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.items["p-1"] = &domain.Project{ID: "p-1", Title: "A", Slug: "a", Technologies: domain.StringList{"Go"}}
	r := newProjectRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/api/projects/a", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/projects/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectUpdatePartial(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.items["p-1"] = &domain.Project{ID: "p-1", Title: "Old", Slug: "a", Description: "d", Technologies: domain.StringList{"Go"}}
	r := newProjectRouter(repo)

	w := doJSON(t, r, http.MethodPut, "/api/projects/p-1", gin.H{"featured": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.items["p-1"].Featured)
	assert.Equal(t, "Old", repo.items["p-1"].Title)
}
