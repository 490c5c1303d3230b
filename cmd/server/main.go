package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "teamforge/docs" // swagger docs

	"teamforge/internal/auth"
	"teamforge/internal/cache"
	"teamforge/internal/config"
	"teamforge/internal/db"
	"teamforge/internal/handler"
	"teamforge/internal/logger"
	"teamforge/internal/repository"
	"teamforge/internal/router"
	"teamforge/internal/service"
)

// @title TeamForge API
// @version 1.0
// @description Hackathon team-formation API: registration, team creation, join requests, finalization, and an admin dashboard surface.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	// Register the data model exactly once at startup.
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	feedbackRepo := repository.NewFeedbackRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	teamService := service.NewTeamService(teamRepo, userRepo, cacheClient)
	userService := service.NewUserService(userRepo, teamRepo, cacheClient, cfg.DefaultPass)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	teamHandler := handler.NewTeamHandler(teamService)
	adminHandler := handler.NewAdminHandler(userService, teamService, feedbackService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	router.Register(e, cfg, authHandler, teamHandler, adminHandler, feedbackHandler)

	log.Info("starting server", zap.String("port", cfg.ServerPort))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}
