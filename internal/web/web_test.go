package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bracken1022/prompt-museum/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*gin.Engine, middleware.Policy) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	policy := middleware.Policy{}
	RegisterRoutes(&r.RouterGroup, policy)
	return r, policy
}

func TestPagesRender(t *testing.T) {
	r, _ := newTestRouter()

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "/auth/login"},
		{path: "/dashboard", want: "/prompts/my-prompts"},
		{path: "/new-prompt", want: `id="promptForm"`},
		{path: "/prompt/7", want: `data-id="7"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Contains(t, w.Body.String(), "access_token")
		})
	}
}

func TestPromptDetailRejectsBadID(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/prompt/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestStylesheet(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/static/app.css", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, w.Body.String(), ".panel")
}

func TestPagesArePublic(t *testing.T) {
	_, policy := newTestRouter()

	for key, vis := range policy {
		assert.Equal(t, middleware.Public, vis, key)
	}
	assert.Len(t, policy, 5)
}

func TestPageEscapesTitle(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, page("<x>", "", "").Render(context.Background(), &sb))
	assert.Contains(t, sb.String(), "&lt;x&gt;")
}
