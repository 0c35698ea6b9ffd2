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

type fakeContactRepo struct {
	items map[string]*domain.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{items: map[string]*domain.Contact{}}
}

func (f *fakeContactRepo) List(_ context.Context, unreadOnly bool) ([]domain.Contact, error) {
	out := make([]domain.Contact, 0, len(f.items))
	for _, m := range f.items {
		if unreadOnly && m.Read {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeContactRepo) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeContactRepo) Create(_ context.Context, m *domain.Contact) error {
	f.items[m.ID] = m
	return nil
}

func (f *fakeContactRepo) Update(_ context.Context, m *domain.Contact) error {
	f.items[m.ID] = m
	return nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeContactRepo) Count(_ context.Context, unreadOnly bool) (int64, error) {
	var n int64
	for _, m := range f.items {
		if unreadOnly && m.Read {
			continue
		}
		n++
	}
	return n, nil
}

func newContactRouter(repo domain.ContactRepository) *gin.Engine {
	h := NewContactHandler(repo)
	r := gin.New()
	r.POST("/api/contact", h.Submit)
	r.GET("/api/contact", withPrincipal(adminPrincipal()), h.List)
	r.PUT("/api/contact/:id/read", withPrincipal(adminPrincipal()), h.MarkRead)
	r.DELETE("/api/contact/:id", withPrincipal(adminPrincipal()), h.Delete)
	return r
}

func TestContactSubmit(t *testing.T) {
	repo := newFakeContactRepo()
	r := newContactRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Jane",
		"email":   "jane@example.com",
		"message": "Hello, I would like to discuss a project.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "message sent successfully", body["message"])
	assert.NotEmpty(t, body["id"])
	assert.Len(t, repo.items, 1)
}

func TestContactSubmitMessageTooShort(t *testing.T) {
	repo := newFakeContactRepo()
	r := newContactRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Jane",
		"email":   "jane@example.com",
		"message": "hi",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	violations := decodeBody(t, w)["error"].([]any)
	first := violations[0].(map[string]any)
	assert.Equal(t, "message", first["field"])
	assert.Empty(t, repo.items)
}

func TestContactSubmitBadEmail(t *testing.T) {
	r := newContactRouter(newFakeContactRepo())
	w := doJSON(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Jane",
		"email":   "not-an-email",
		"message": "Hello, I would like to discuss a project.",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactMarkReadIdempotent(t *testing.T) {
	repo := newFakeContactRepo()
	repo.items["m-1"] = &domain.Contact{ID: "m-1", Name: "Jane", Email: "jane@example.com", Message: "a long enough message"}
	r := newContactRouter(repo)

	w := doJSON(t, r, http.MethodPut, "/api/contact/m-1/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.items["m-1"].Read)

	// 重复标记不报错
	w = doJSON(t, r, http.MethodPut, "/api/contact/m-1/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestContactListUnreadFilter(t *testing.T) {
	repo := newFakeContactRepo()
	repo.items["m-1"] = &domain.Contact{ID: "m-1", Name: "A", Email: "a@example.com", Message: "xxxxxxxxxx", Read: true}
	repo.items["m-2"] = &domain.Contact{ID: "m-2", Name: "B", Email: "b@example.com", Message: "yyyyyyyyyy"}
	r := newContactRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/api/contact?unread=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := decodeBody(t, w)["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "m-2", msgs[0].(map[string]any)["id"])
}

func TestContactDeleteNotFound(t *testing.T) {
	r := newContactRouter(newFakeContactRepo())
	w := doJSON(t, r, http.MethodDelete, "/api/contact/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
