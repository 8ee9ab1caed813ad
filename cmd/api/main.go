package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/config"
	dbpkg "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/db"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/logger"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/middleware"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/routes"
)

func main() {
	os.Exit(start())
}

// start devolve o código de saída; os defers (sync do log, fila de
// auditoria, redis) rodam antes do os.Exit.
func start() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log.Named("audit"))
	defer dispatcher.Close()

	limiter, closeLimiter := newLimiter(cfg, log)
	defer closeLimiter()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Audit:   dispatcher,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newLimiter usa o redis quando configurado e acessível; senão cai para
// o limitador em memória.
func newLimiter(cfg *config.Config, log *zap.Logger) (middleware.Limiter, func()) {
	if !cfg.RedisEnabled() {
		return middleware.NewMemoryLimiter(cfg.RateLimitPerMin), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, using in-memory rate limit",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		_ = rdb.Close()
		return middleware.NewMemoryLimiter(cfg.RateLimitPerMin), func() {}
	}

	log.Info("rate limit backed by redis", zap.String("addr", cfg.RedisAddr))
	return middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMin, time.Minute, "cuttime:rl"),
		func() { _ = rdb.Close() }
}
