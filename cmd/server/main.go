package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/api/handler"
	"tec-planning/backend/internal/api/middleware"
	"tec-planning/backend/internal/api/router"
	"tec-planning/backend/internal/repository"
	"tec-planning/backend/internal/seed"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/database"
	"tec-planning/backend/pkg/jwt"
	applogger "tec-planning/backend/pkg/logger"
	"tec-planning/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config/config.yaml or ./config.yaml)")
	flag.Parse()

	// 1. configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("db_driver", cfg.Database.Driver()),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	// 3.1 schema and reference data; any failure aborts startup
	if cfg.Seed.Enabled {
		fixtures := seed.DefaultFixtures()
		if cfg.Seed.DataDir != "" {
			fixtures = os.DirFS(cfg.Seed.DataDir)
		}
		if _, err := seed.NewSeeder(db, fixtures, cfg.Academic, logger).Bootstrap(context.Background()); err != nil {
			logger.Fatal("bootstrap failed", zap.Error(err))
		}
	} else if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	// 4. redis (optional)
	var (
		rdb       *redis.Client
		blacklist service.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, logout revocation and rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			blacklist, limiter = rdb, rdb
		}
	}

	// 5. tokens
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. repository → service → handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, logger)
	h := handler.NewHandler(svc)

	// 7. routes
	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, h, svc.Auth, limiter, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if sqlDB, _ := db.DB(); sqlDB != nil {
		_ = sqlDB.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
