// Package main provides the entry point for the LinkGate URL Shortener service.
//
//	@title			LinkGate URL Shortener API
//	@version		1.0.0
//	@description	Short links with a fixed lifetime and an optional password gate.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	AdminToken
//	@in							header
//	@name						X-Admin-Token
//	@description				Administrative token from admin.token config
package main

import (
	"LinkGate-Backend/internal/auth"
	"LinkGate-Backend/internal/config"
	"LinkGate-Backend/internal/database"
	"LinkGate-Backend/internal/domain"
	httpHandler "LinkGate-Backend/internal/handler/http"
	"LinkGate-Backend/internal/repository"
	"LinkGate-Backend/internal/repository/memory"
	"LinkGate-Backend/internal/repository/relational"
	"LinkGate-Backend/internal/service"
	"LinkGate-Backend/internal/sweeper"
	"LinkGate-Backend/pkg/logger"
	"LinkGate-Backend/pkg/random"
	"context"
	"errors"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "LinkGate-Backend/docs" // Import swagger docs
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting LinkGate service", zap.String("env", cfg.Env))

	storage, closeStorage := mustOpenStorage(cfg, log)
	defer closeStorage()

	clock := domain.RealClock{}

	secret := cfg.Access.Secret
	if secret == "" {
		// токены доступа не переживут рестарт, пароли придется вводить заново
		generated, err := random.NewRandomString(48)
		if err != nil {
			log.Fatal("failed to generate access secret", zap.Error(err))
		}
		secret = generated
		log.Warn("access.secret is not set, using an ephemeral secret")
	}

	passwordService := auth.NewPasswordServiceWithCost(cfg.Access.BcryptCost)
	tokenService := auth.NewTokenService(&auth.TokenConfig{
		SecretKey: []byte(secret),
		TTL:       cfg.Access.GrantTTL,
		Issuer:    cfg.Access.Issuer,
	})
	gate := auth.NewGate(passwordService, tokenService)

	linkService := service.NewLinkService(
		storage,
		gate,
		passwordService,
		service.RandomGenerator{},
		clock,
		&cfg.URLShortener,
		log,
	)

	locker, closeLocker := newLocker(cfg, log)
	defer closeLocker()

	reclaimer := sweeper.New(storage, locker, clock, log, sweeper.Config{
		Interval:   cfg.Sweeper.Interval,
		Timeout:    cfg.Sweeper.Timeout,
		RunOnStart: cfg.Sweeper.RunOnStart,
	})
	if err := reclaimer.Start(); err != nil {
		log.Fatal("failed to start sweeper", zap.Error(err))
	}

	httpAPIServer, err := httpHandler.NewServer(linkService, storage, reclaimer, cfg, log)
	if err != nil {
		log.Fatal("failed to create HTTP server", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      httpAPIServer.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", cfg.HTTPServer.Address))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down LinkGate service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	if err := reclaimer.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop sweeper", zap.Error(err))
	}
}

// mustOpenStorage выбирает хранилище по конфигу и возвращает функцию закрытия
func mustOpenStorage(cfg *config.Config, log *zap.Logger) (repository.Storage, func()) {
	if cfg.Database.InMemory {
		log.Warn("using in-memory storage, links will not survive a restart")
		return memory.New(), func() {}
	}

	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	return relational.New(db, log), func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}
}

// newLocker подключает redis для общей блокировки сборщика.
// Без redis (или если он недоступен) каждый экземпляр чистит сам: удаление идемпотентно.
func newLocker(cfg *config.Config, log *zap.Logger) (sweeper.Locker, func()) {
	if cfg.Redis.Addr == "" {
		return sweeper.NoopLocker{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, sweeper runs without a shared lease",
			zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = client.Close()
		return sweeper.NoopLocker{}, func() {}
	}

	log.Info("sweeper lease enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Sweeper.LockTTL))
	return sweeper.NewRedisLocker(client, sweeper.DefaultLockKey, cfg.Sweeper.LockTTL), func() {
		if err := client.Close(); err != nil {
			log.Error("failed to close redis client", zap.Error(err))
		}
	}
}
