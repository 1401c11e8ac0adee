package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	"github.com/BruksfildServices01/autoimport-crm/internal/config"
	dbpkg "github.com/BruksfildServices01/autoimport-crm/internal/db"
	"github.com/BruksfildServices01/autoimport-crm/internal/infra/cache"
	"github.com/BruksfildServices01/autoimport-crm/internal/infra/storage"
	"github.com/BruksfildServices01/autoimport-crm/internal/logger"
	"github.com/BruksfildServices01/autoimport-crm/internal/middleware"
	"github.com/BruksfildServices01/autoimport-crm/internal/notify"
	"github.com/BruksfildServices01/autoimport-crm/internal/routes"
	"github.com/BruksfildServices01/autoimport-crm/internal/timezone"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db := dbpkg.NewDB(cfg, log)

	// 1️⃣ audit assíncrono
	dispatcher := audit.NewDispatcher(audit.New(db), log)

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Audit:  dispatcher,
	}

	// 2️⃣ redis (fallback em memória)
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(cfg, log)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()

		store := cache.NewRedis(client, timezone.Location(cfg.Timezone))
		deps.Filters, deps.Revocations, deps.Limiter = store, store, store
	} else {
		log.Warn("REDIS_ADDR not set, using in-memory store")
		store := cache.NewMemory()
		deps.Filters, deps.Revocations, deps.Limiter = store, store, store
	}

	// 3️⃣ avatares
	if cfg.S3Bucket != "" {
		deps.Avatars = storage.NewAvatarStore(storage.NewS3Client(cfg), cfg.S3Bucket, cfg.S3PublicURL)
	}

	// 4️⃣ notificações
	if mailer := notify.NewMailer(cfg); mailer != nil {
		deps.Notifier = mailer
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	dispatcher.Close()
}
