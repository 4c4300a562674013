package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard-platform/internal/applications"
	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/companies"
	"jobboard-platform/internal/config"
	"jobboard-platform/internal/httpapi"
	"jobboard-platform/internal/identity"
	"jobboard-platform/internal/jobs"
	"jobboard-platform/internal/users"
	"jobboard-platform/pkg/logger"
	"jobboard-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Missing .env is fine; real deployments inject env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := identity.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	mongoClient, db, err := utils.OpenMongo(rootCtx, utils.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Error("mongo init failed", "err", err)
		os.Exit(1)
	}

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	userRepo := users.NewMongoRepo(db)
	companyRepo := companies.NewMongoRepo(db)
	jobRepo := jobs.NewMongoRepo(db)
	applicationRepo := applications.NewMongoRepo(db)
	auditRepo := audit.NewMongoRepo(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":        userRepo.EnsureIndexes,
		"companies":    companyRepo.EnsureIndexes,
		"jobs":         jobRepo.EnsureIndexes,
		"applications": applicationRepo.EnsureIndexes,
		"audit_logs":   auditRepo.EnsureIndexes,
	} {
		if err := ensure(rootCtx); err != nil {
			log.Error("index init failed", "collection", name, "err", err)
			os.Exit(1)
		}
	}

	userService := users.NewService(userRepo, cfg.Auth.BcryptCost)
	companyService := companies.NewService(companyRepo)
	jobService := jobs.NewService(jobRepo)
	applicationService := applications.NewService(applicationRepo)
	auditService := audit.NewService(auditRepo)

	if err := userService.SeedAdmin(rootCtx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	recorder := audit.NewRecorder(auditService, log)

	h := httpapi.Handlers{
		Auth:     authManager,
		Tokens:   identity.NewRedisTokenStore(rdb),
		ResetTTL: cfg.Auth.ResetTokenTTL,

		Users:        userService,
		Companies:    companyService,
		Jobs:         jobService,
		Applications: applicationService,
		Audit:        auditService,

		Log: log,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, authManager, userService, recorder)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	// Let in-flight audit writes finish before the mongo client goes away.
	if err := recorder.Drain(shutdownCtx); err != nil {
		log.Error("audit drain incomplete", "err", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("mongo disconnect failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
