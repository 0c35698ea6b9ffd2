package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/core/identity"
	"portfolio-backend/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*domain.User{}} }

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindBySubject(_ context.Context, subjectID string) (*domain.User, error) {
	for _, u := range m.users {
		if u.SubjectID != nil && *u.SubjectID == subjectID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Update(_ context.Context, u *domain.User) error {
	m.users[u.ID] = u
	return nil
}

func testStack(t *testing.T, repo domain.UserRepository) (*identity.TokenVerifier, *gin.Engine) {
	t.Helper()
	v := &identity.TokenVerifier{Secret: []byte("test-secret"), Issuer: "test-issuer", TTL: time.Hour}
	r := auth.NewResolver(v, repo)

	e := gin.New()
	e.GET("/protected", RequireAuth(r), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": Principal(c).UserID})
	})
	e.GET("/admin", RequireAuth(r), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	e.GET("/open", OptionalAuth(r), func(c *gin.Context) {
		p := Principal(c)
		anonymous := p == nil
		c.JSON(http.StatusOK, gin.H{"anonymous": anonymous})
	})
	return v, e
}

func get(e *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	_, e := testStack(t, newMemUserRepo())
	w := get(e, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token provided")
}

func TestRequireAuthBadToken(t *testing.T) {
	_, e := testStack(t, newMemUserRepo())
	w := get(e, "/protected", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestRequireAuthProvisionsUser(t *testing.T) {
	repo := newMemUserRepo()
	v, e := testStack(t, repo)

	tok, err := v.Issue("sub-1", "new@example.com", "New User", "")
	require.NoError(t, err)

	w := get(e, "/protected", tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.users, 1)
}

func TestRequireAdminForbidsUserRole(t *testing.T) {
	repo := newMemUserRepo()
	sub := "sub-1"
	repo.users["u-1"] = &domain.User{ID: "u-1", SubjectID: &sub, Email: "user@example.com", Role: domain.RoleUser}
	v, e := testStack(t, repo)

	tok, err := v.Issue("sub-1", "user@example.com", "", "")
	require.NoError(t, err)

	w := get(e, "/admin", tok)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin access required")
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	repo := newMemUserRepo()
	sub := "sub-1"
	repo.users["u-1"] = &domain.User{ID: "u-1", SubjectID: &sub, Email: "admin@example.com", Role: domain.RoleAdmin}
	v, e := testStack(t, repo)

	tok, err := v.Issue("sub-1", "admin@example.com", "", "")
	require.NoError(t, err)

	w := get(e, "/admin", tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthAnonymousPasses(t *testing.T) {
	_, e := testStack(t, newMemUserRepo())
	w := get(e, "/open", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestOptionalAuthBadTokenStillPasses(t *testing.T) {
	_, e := testStack(t, newMemUserRepo())
	w := get(e, "/open", "garbage")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestOptionalAuthNeverProvisions(t *testing.T) {
	repo := newMemUserRepo()
	v, e := testStack(t, repo)

	tok, err := v.Issue("sub-new", "new@example.com", "", "")
	require.NoError(t, err)

	w := get(e, "/open", tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
	assert.Empty(t, repo.users)
}
