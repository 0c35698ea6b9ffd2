package handler

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domain"
)

type fakeExperienceRepo struct {
	items map[string]*domain.Experience
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{items: map[string]*domain.Experience{}}
}

func (f *fakeExperienceRepo) List(_ context.Context) ([]domain.Experience, error) {
	out := make([]domain.Experience, 0, len(f.items))
	for _, e := range f.items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Current != out[j].Current {
			return out[i].Current
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (f *fakeExperienceRepo) FindByID(_ context.Context, id string) (*domain.Experience, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExperienceRepo) Create(_ context.Context, e *domain.Experience) error {
	f.items[e.ID] = e
	return nil
}

func (f *fakeExperienceRepo) Update(_ context.Context, e *domain.Experience) error {
	f.items[e.ID] = e
	return nil
}

func (f *fakeExperienceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func newExperienceRouter(repo domain.ExperienceRepository) *gin.Engine {
	h := NewExperienceHandler(repo)
	r := gin.New()
	r.GET("/api/experience", h.List)
	r.POST("/api/experience", withPrincipal(adminPrincipal()), h.Create)
	r.PUT("/api/experience/:id", withPrincipal(adminPrincipal()), h.Update)
	r.DELETE("/api/experience/:id", withPrincipal(adminPrincipal()), h.Delete)
	return r
}

func TestExperienceCreateDateOnly(t *testing.T) {
	repo := newFakeExperienceRepo()
	r := newExperienceRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/experience", gin.H{
		"company":     "Acme",
		"role":        "Backend Engineer",
		"startDate":   "2023-04-01",
		"description": "built APIs",
		"current":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.items, 1)
	for _, e := range repo.items {
		assert.Equal(t, 2023, e.StartDate.Year())
		assert.Nil(t, e.EndDate)
		assert.True(t, e.Current)
	}
}

func TestExperienceCreateRFC3339(t *testing.T) {
	repo := newFakeExperienceRepo()
	r := newExperienceRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/experience", gin.H{
		"company":     "Acme",
		"role":        "Backend Engineer",
		"startDate":   "2020-01-15T00:00:00Z",
		"endDate":     "2022-06-30T00:00:00Z",
		"description": "built APIs",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	for _, e := range repo.items {
		require.NotNil(t, e.EndDate)
		assert.Equal(t, 2022, e.EndDate.Year())
	}
}

func TestExperienceCreateBadDate(t *testing.T) {
	repo := newFakeExperienceRepo()
	r := newExperienceRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/experience", gin.H{
		"company":     "Acme",
		"role":        "Backend Engineer",
		"startDate":   "April 2023",
		"description": "built APIs",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.items)
}

func TestExperienceUpdateClearEndDate(t *testing.T) {
	repo := newFakeExperienceRepo()
	start, _ := parseDate("2023-04-01")
	end, _ := parseDate("2024-01-01")
	repo.items["e-1"] = &domain.Experience{
		ID: "e-1", Company: "Acme", Role: "Dev", StartDate: start, EndDate: &end, Description: "d",
	}
	r := newExperienceRouter(repo)

	w := doJSON(t, r, http.MethodPut, "/api/experience/e-1", gin.H{"endDate": "", "current": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, repo.items["e-1"].EndDate)
	assert.True(t, repo.items["e-1"].Current)
}

func TestExperienceDeleteNotFound(t *testing.T) {
	r := newExperienceRouter(newFakeExperienceRepo())
	w := doJSON(t, r, http.MethodDelete, "/api/experience/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
