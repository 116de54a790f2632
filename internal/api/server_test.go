package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-service/internal/entity"
	"portfolio-service/internal/repository"
	"portfolio-service/internal/service"
	"portfolio-service/migrations"
)

type memorySessions struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (m *memorySessions) Save(_ context.Context, username, token string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[username] = token
	return nil
}

func (m *memorySessions) Lookup(_ context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[username]
	if !ok {
		return "", entity.ErrNotFound
	}
	return token, nil
}

func (m *memorySessions) Revoke(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, username)
	return nil
}

func newTestServer(t *testing.T, configure func(*ServerOptions)) *echo.Echo {
	t.Helper()

	ctx := context.Background()
	db, err := repository.Open(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "portfolio.db"), 1, 0)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.AutoMigrate(ctx, db, repository.DriverSQLite, 0))

	tokens := service.NewTokenIssuer("test-secret", time.Hour)
	sessions := &memorySessions{tokens: map[string]string{}}
	pub := service.NopPublisher{}

	opts := ServerOptions{
		Owners:   service.NewOwnerService(repository.NewOwnerRepository(db), tokens, sessions),
		Projects: service.NewProjectService(repository.NewProjectRepository(db), pub),
		Blogs:    service.NewBlogService(repository.NewBlogRepository(db), pub),
		Contacts: service.NewContactService(repository.NewContactRepository(db), pub),
		Tokens:   tokens,
	}
	if configure != nil {
		configure(&opts)
	}
	return NewServer(opts)
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signupAndLogin(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/signup", `{"username":"steve","email":"steve@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doForm(e, "/login", url.Values{"username": {"steve"}, "password": {"pw"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok entity.AccessToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	return tok.AccessToken
}

func TestSignup(t *testing.T) {
	e := newTestServer(t, nil)

	rec := doJSON(e, http.MethodPost, "/signup", `{"username":"steve","email":"steve@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"username":"steve","email":"steve@example.com"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(e, http.MethodPost, "/signup", `{"username":"steve2","email":"steve@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"Owner already exists"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/signup", `{"username":"x","email":"not-an-email","password":"pw"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"email"`)

	rec = doJSON(e, http.MethodPost, "/signup", `{"username":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginAndCaller(t *testing.T) {
	e := newTestServer(t, nil)
	token := signupAndLogin(t, e)
	assert.NotEqual(t, "steve", token)

	rec := doForm(e, "/login", url.Values{"username": {"steve"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Incorrect username or password"}`, rec.Body.String())

	rec = doForm(e, "/login", url.Values{"username": {"steve"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodGet, "/owner/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello, steve"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/owner/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, rec.Body.String())
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = doJSON(e, http.MethodGet, "/owner/me", "", "steve")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid credentials"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/logout", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"detail":"Logged out"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/owner/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProjectEndpoints(t *testing.T) {
	e := newTestServer(t, nil)
	want := `{"id":1,"title":"T","description":"D","project_link":"L"}`

	rec := doJSON(e, http.MethodPost, "/projects/", `{"title":"T","description":"D","project_link":"L"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, want, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/projects/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, want, rec.Body.String())

	rec = doJSON(e, http.MethodPut, "/projects/1", `{"title":"T2","description":"D2","project_link":"L2"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"T2","description":"D2","project_link":"L2"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/projects/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"title":"T2","description":"D2","project_link":"L2"}]`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/projects", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/projects/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"T2","description":"D2","project_link":"L2"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/projects/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Project not found"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPut, "/projects/1", `{"title":"T","description":"D","project_link":"L"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/projects/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/projects/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid ID"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/projects/", `{"title":"T"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodPost, "/projects/", `{"title":"","description":"D","project_link":"L"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"field":"title","rule":"required"}`)
}

func TestDeleteAllProjects(t *testing.T) {
	e := newTestServer(t, nil)

	for i := 0; i < 3; i++ {
		rec := doJSON(e, http.MethodPost, "/projects/", `{"title":"T","description":"D","project_link":"L"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(e, http.MethodDelete, "/projects/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"detail":"All projects deleted"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/projects/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBlogEndpoints(t *testing.T) {
	e := newTestServer(t, nil)

	rec := doJSON(e, http.MethodPost, "/blogs/", `{"title":"Hello","content":"World","author":"Steve"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"Hello","content":"World","author":"Steve","published":0}`, rec.Body.String())

	rec = doJSON(e, http.MethodPut, "/blogs/1", `{"title":"Hello","content":"World","author":"Steve","published":1}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/blogs/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"Hello","content":"World","author":"Steve","published":1}`, rec.Body.String())

	rec = doJSON(e, http.MethodDelete, "/blogs/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/blogs/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Blog not found"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/blogs/", `{"title":"a","content":"b","author":"c"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/blogs/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"detail":"All blogs deleted"}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/blogs/", "", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestContactEndpoints(t *testing.T) {
	e := newTestServer(t, nil)

	rec := doJSON(e, http.MethodPost, "/contacts/", `{"email":"me@example.com","x_link":"x.com/me","linkedin_link":"linkedin.com/in/me"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"email":"me@example.com","x_link":"x.com/me","linkedin_link":"linkedin.com/in/me"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPut, "/contacts/1", `{"email":"you@example.com","x_link":"x","linkedin_link":"l"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"email":"you@example.com","x_link":"x","linkedin_link":"l"}`, rec.Body.String())

	rec = doJSON(e, http.MethodDelete, "/contacts/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPut, "/contacts/1", `{"email":"you@example.com","x_link":"x","linkedin_link":"l"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Contact Info not found"}`, rec.Body.String())

	rec = doJSON(e, http.MethodDelete, "/contacts/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Contact info not found"}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/contacts/", `{"email":"nope","x_link":"x","linkedin_link":"l"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(e, http.MethodGet, "/contacts/", "", "")
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestRequireAuth(t *testing.T) {
	e := newTestServer(t, func(o *ServerOptions) { o.RequireAuth = true })
	token := signupAndLogin(t, e)
	body := `{"title":"T","description":"D","project_link":"L"}`

	rec := doJSON(e, http.MethodPost, "/projects/", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/projects/", body, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/projects/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/projects/", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	e := newTestServer(t, func(o *ServerOptions) {
		o.RateLimit = 0.001
		o.RateBurst = 1
	})

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"detail":"rate limit exceeded"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	e := newTestServer(t, nil)

	rec := doJSON(e, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
}
