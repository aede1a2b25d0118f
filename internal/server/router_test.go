package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/testutil"
)

type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func (c *client) do(method, path string, payload interface{}, out interface{}) int {
	c.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(c.t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	if out != nil {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	return NewRouter(Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		SessionStore:   cookie.NewStore([]byte("test-secret")),
	}, NewServices(db, nil))
}

func signupAndLogin(t *testing.T, router *gin.Engine, name, email string) (*client, string) {
	t.Helper()
	c := &client{t: t, router: router}

	var user struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": "supersecret",
	}, &user))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "supersecret",
	}, nil))
	return c, user.ID
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)
	c := &client{t: t, router: router}

	var body map[string]string
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_ProtectedRoutesRequireSession(t *testing.T) {
	router := newTestRouter(t)
	c := &client{t: t, router: router}

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/workspaces", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/auth/me", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/notifications", nil, nil))
}

func TestRouter_WorkspaceTaskFlow(t *testing.T) {
	router := newTestRouter(t)
	alice, _ := signupAndLogin(t, router, "Alice", "alice@example.com")
	bob, bobID := signupAndLogin(t, router, "Bob", "bob@example.com")

	var me struct {
		Name string `json:"name"`
	}
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/api/auth/me", nil, &me))
	assert.Equal(t, "Alice", me.Name)

	var workspaces []struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/api/workspaces", nil, &workspaces))
	require.Len(t, workspaces, 1)
	workspaceID := workspaces[0].ID

	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/workspaces/"+workspaceID+"/members",
		map[string]string{"user_id": bobID}, nil))

	var project struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/workspaces/"+workspaceID+"/projects",
		map[string]string{"name": "Release"}, &project))

	var sections []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/projects/"+project.ID+"/sections", nil, &sections))
	require.Len(t, sections, 3)

	var created struct {
		Task struct {
			ID string `json:"id"`
		} `json:"task"`
		Warnings []string `json:"warnings"`
	}
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/projects/"+project.ID+"/tasks", map[string]interface{}{
		"section_id":  sections[0].ID,
		"name":        "Ship it",
		"assignee_id": bobID,
	}, &created))
	assert.Empty(t, created.Warnings)

	require.Equal(t, http.StatusOK, bob.do(http.MethodPost, "/api/tasks/"+created.Task.ID+"/move",
		map[string]string{"section_id": sections[1].ID}, nil))

	var unread struct {
		Count int64 `json:"count"`
	}
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/notifications/unread-count", nil, &unread))
	assert.EqualValues(t, 1, unread.Count)

	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/notifications?limit=10", nil, &page))
	require.Len(t, page.Items, 1)

	assert.Equal(t, http.StatusForbidden, alice.do(http.MethodPost, "/api/notifications/"+page.Items[0].ID+"/read", nil, nil))
	require.Equal(t, http.StatusOK, bob.do(http.MethodPost, "/api/notifications/"+page.Items[0].ID+"/read", nil, nil))

	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/notifications/unread-count", nil, &unread))
	assert.Zero(t, unread.Count)

	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, alice.do(http.MethodGet, "/api/workspaces", nil, nil))
}

func TestRouter_NotificationQueryValidation(t *testing.T) {
	router := newTestRouter(t)
	c, _ := signupAndLogin(t, router, "Alice", "alice@example.com")

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/notifications?limit=0", nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/notifications?limit=101", nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/notifications?limit=ten", nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/notifications?unread_only=maybe", nil, nil))
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/notifications?unread_only=1", nil, nil))
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/notifications?unread_only=false", nil, nil))
}
