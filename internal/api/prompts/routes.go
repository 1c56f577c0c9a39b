package prompts

import (
	"net/http"

	"github.com/bracken1022/prompt-museum/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, policy middleware.Policy, h *Handler) {
	prompts := router.Group("/prompts")
	policy.Handle(prompts, middleware.Public, http.MethodGet, "", h.List)
	policy.Handle(prompts, middleware.Public, http.MethodGet, "/categories", h.Categories)
	policy.Handle(prompts, middleware.Public, http.MethodGet, "/agents", h.Agents)
	policy.Handle(prompts, middleware.Protected, http.MethodGet, "/my-prompts", h.MyPrompts)
	policy.Handle(prompts, middleware.Public, http.MethodGet, "/:id", h.Get)
	policy.Handle(prompts, middleware.Protected, http.MethodPost, "", h.Create)
	policy.Handle(prompts, middleware.Protected, http.MethodPatch, "/:id", h.Update)
	policy.Handle(prompts, middleware.Protected, http.MethodDelete, "/:id", h.Delete)
	policy.Handle(prompts, middleware.Public, http.MethodPost, "/:id/like", h.Like)
}
