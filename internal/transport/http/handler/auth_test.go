package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*domain.User{}} }

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindBySubject(_ context.Context, subjectID string) (*domain.User, error) {
	for _, u := range f.users {
		if u.SubjectID != nil && *u.SubjectID == subjectID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func newAuthRouter(repo domain.UserRepository, p *auth.Principal) *gin.Engine {
	h := NewAuthHandler(repo)
	r := gin.New()
	r.GET("/api/auth/me", withPrincipal(p), h.Me)
	r.POST("/api/auth/sync", withPrincipal(p), h.Sync)
	r.PUT("/api/auth/profile", withPrincipal(p), h.UpdateProfile)
	return r
}

func TestAuthMeProjection(t *testing.T) {
	repo := newFakeUserRepo()
	sub := "sub-1"
	name := "Jane"
	repo.users["u-1"] = &domain.User{
		ID: "u-1", SubjectID: &sub, Email: "jane@example.com", Name: &name, Role: domain.RoleUser,
	}
	r := newAuthRouter(repo, &auth.Principal{UserID: "u-1", Email: "jane@example.com", Role: domain.RoleUser})

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	u := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "u-1", u["id"])
	assert.Equal(t, "Jane", u["name"])
	// subject id 不出响应
	_, leaked := u["subjectId"]
	assert.False(t, leaked)
}

func TestAuthSyncReturnsUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u-1"] = &domain.User{ID: "u-1", Email: "jane@example.com", Role: domain.RoleUser}
	r := newAuthRouter(repo, &auth.Principal{UserID: "u-1", Email: "jane@example.com", Role: domain.RoleUser})

	w := doJSON(t, r, http.MethodPost, "/api/auth/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane@example.com", decodeBody(t, w)["user"].(map[string]any)["email"])
}

func TestAuthUpdateProfileSelfService(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u-1"] = &domain.User{ID: "u-1", Email: "jane@example.com", Role: domain.RoleUser}
	r := newAuthRouter(repo, &auth.Principal{UserID: "u-1", Email: "jane@example.com", Role: domain.RoleUser})

	w := doJSON(t, r, http.MethodPut, "/api/auth/profile", gin.H{
		"name":     "Jane D",
		"photoUrl": "https://example.com/p.png",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.users["u-1"].Name)
	assert.Equal(t, "Jane D", *repo.users["u-1"].Name)
	// role 不可通过自助接口改
	assert.Equal(t, domain.RoleUser, repo.users["u-1"].Role)
}

func TestAuthUpdateProfileBadURL(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u-1"] = &domain.User{ID: "u-1", Email: "jane@example.com", Role: domain.RoleUser}
	r := newAuthRouter(repo, &auth.Principal{UserID: "u-1", Email: "jane@example.com", Role: domain.RoleUser})

	w := doJSON(t, r, http.MethodPut, "/api/auth/profile", gin.H{"photoUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
