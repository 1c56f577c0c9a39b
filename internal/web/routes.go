package web

import (
	"embed"
	"net/http"
	"strconv"

	"github.com/bracken1022/prompt-museum/internal/middleware"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

//go:embed static/app.css
var staticFS embed.FS

// RegisterRoutes mounts the browser pages. Pages are public; their scripts
// send the stored token when calling protected endpoints.
func RegisterRoutes(router *gin.RouterGroup, policy middleware.Policy) {
	policy.Handle(router, middleware.Public, http.MethodGet, "/", render(Landing()))
	policy.Handle(router, middleware.Public, http.MethodGet, "/dashboard", render(Dashboard()))
	policy.Handle(router, middleware.Public, http.MethodGet, "/new-prompt", render(NewPrompt()))
	policy.Handle(router, middleware.Public, http.MethodGet, "/prompt/:id", promptDetail)
	policy.Handle(router, middleware.Public, http.MethodGet, "/static/app.css", stylesheet)
}

func render(comp templ.Component) gin.HandlerFunc {
	return func(c *gin.Context) {
		templ.Handler(comp).ServeHTTP(c.Writer, c.Request)
	}
}

func promptDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	templ.Handler(PromptDetail(uint(id))).ServeHTTP(c.Writer, c.Request)
}

func stylesheet(c *gin.Context) {
	css, err := staticFS.ReadFile("static/app.css")
	if err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "text/css; charset=utf-8", css)
}
