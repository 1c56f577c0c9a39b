package api

import (
	"net/http"
	"time"

	"github.com/bracken1022/prompt-museum/config"
	_ "github.com/bracken1022/prompt-museum/docs"
	"github.com/bracken1022/prompt-museum/internal/api/auth"
	"github.com/bracken1022/prompt-museum/internal/api/health"
	"github.com/bracken1022/prompt-museum/internal/api/prompts"
	"github.com/bracken1022/prompt-museum/internal/middleware"
	"github.com/bracken1022/prompt-museum/internal/services"
	"github.com/bracken1022/prompt-museum/internal/utils"
	"github.com/bracken1022/prompt-museum/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the wired services the HTTP surface needs.
type Dependencies struct {
	Config  *config.Config
	Auth    *services.AuthService
	Prompts *services.PromptService
}

func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	utils.UseJSONFieldNames()

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// The guard must be installed before any route is registered.
	policy := middleware.Policy{}
	router.Use(middleware.AccessGuard(policy, deps.Auth))

	root := &router.RouterGroup
	policy.Handle(root, middleware.Public, http.MethodGet, "/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	health.RegisterRoutes(root, policy, cfg.Environment)
	auth.RegisterRoutes(root, policy, auth.NewHandler(deps.Auth))
	prompts.RegisterRoutes(root, policy, prompts.NewHandler(deps.Prompts))
	web.RegisterRoutes(root, policy)

	return router
}
