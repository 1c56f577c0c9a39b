package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bracken1022/prompt-museum/config"
	"github.com/bracken1022/prompt-museum/internal/api"
	"github.com/bracken1022/prompt-museum/internal/database"
	"github.com/bracken1022/prompt-museum/internal/services"
	"github.com/bracken1022/prompt-museum/internal/utils"
	"github.com/bracken1022/prompt-museum/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Prompt Museum API
// @version 1.0
// @description Share, discover and like prompts for AI agents.

// @license.name MIT

// @host localhost:3000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect redis", zap.Error(err))
	}
	if rdb == nil {
		logger.Log.Warn("REDIS_HOST not set: caching and token revocation disabled")
	} else {
		defer rdb.Close()
	}

	users := services.NewUserService(db, rdb)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	router := api.NewRouter(api.Dependencies{
		Config:  cfg,
		Auth:    services.NewAuthService(db, users, tokens, services.NewTokenDenylist(rdb), cfg.BcryptCost),
		Prompts: services.NewPromptService(db, users, rdb),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("db_driver", cfg.Driver()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}
}
