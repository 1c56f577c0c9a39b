package auth

import (
	"net/http"

	"github.com/bracken1022/prompt-museum/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, policy middleware.Policy, h *Handler) {
	auth := router.Group("/auth")
	policy.Handle(auth, middleware.Public, http.MethodPost, "/register", h.Register)
	policy.Handle(auth, middleware.Public, http.MethodPost, "/login", h.Login)
	policy.Handle(auth, middleware.Public, http.MethodPost, "/forgot-password", h.ForgotPassword)
	policy.Handle(auth, middleware.Protected, http.MethodPost, "/logout", h.Logout)
	policy.Handle(auth, middleware.Protected, http.MethodGet, "/me", h.Me)
}
