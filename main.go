package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"orgauth/internal/auth"
	"orgauth/internal/config"
	"orgauth/internal/database"
	"orgauth/internal/handlers"
	"orgauth/internal/middleware"
	"orgauth/internal/routes"
	"orgauth/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	ctx := context.Background()

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("opening store")
	}
	defer closeStore()

	var revoker auth.Revoker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("connecting to redis")
		}
		revoker = auth.NewRedisDenylist(rdb)
		log.WithField("addr", cfg.RedisAddr).Info("token revocation enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.New(st, auth.NewBcryptHasher(cfg.BcryptCost), tokens, revoker, log)
	handler := routes.SetupRoutes(h, routes.Options{
		Authenticator:  middleware.NewAuthenticator(tokens, revoker, log),
		Metrics:        middleware.NewMetrics(registry),
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen error")
		}
	}()

	// Wait for Ctrl+C, docker stop or kill
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
		return
	}

	log.Info("server exited gracefully")
}

// openStore returns the Postgres store when DATABASE_URL is set, otherwise an in-memory store.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	db, err := database.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return store.NewPostgres(db), func() { db.Close() }, nil
}
