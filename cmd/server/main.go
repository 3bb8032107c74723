package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"actlog/internal/auth"
	"actlog/internal/cache"
	"actlog/internal/config"
	"actlog/internal/db"
	"actlog/internal/handler"
	"actlog/internal/logger"
	"actlog/internal/repository"
	"actlog/internal/router"
	"actlog/internal/service"
)

// @title Activity Log API
// @version 1.0
// @description Per-user activity logs and quick tasks with JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database init")
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}()

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, caching and logout revocation disabled")
	}
	cancelPing()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	logRepo := repository.NewLogRepository(gormDB)
	taskRepo := repository.NewQuickTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, userService, jwtService, tokenStore)
	logService := service.NewLogService(logRepo)
	taskService := service.NewQuickTaskService(taskRepo)

	if cfg.HasAdminBootstrap() {
		created, err := authService.BootstrapAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin")
		}
		log.Info().Str("username", cfg.AdminUsername).Bool("created", created).Msg("admin account ready")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = cfg.RequestTimeout + 5*time.Second
	e.Server.IdleTimeout = 60 * time.Second

	router.Register(
		e,
		cfg,
		jwtService,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(),
		handler.NewLogHandler(logService),
		handler.NewQuickTaskHandler(taskService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
