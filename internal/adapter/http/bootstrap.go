package http

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	redislib "github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"taskboard/internal/adapter/cache"
	"taskboard/internal/adapter/database/postgres"
	postgresrepo "taskboard/internal/adapter/database/postgres/repository"
	"taskboard/internal/adapter/database/sqlite"
	sqliterepo "taskboard/internal/adapter/database/sqlite/repository"
	"taskboard/internal/adapter/telemetry"
	"taskboard/internal/core/port"
	"taskboard/pkg/config"
)

// StartServer boots storage, the optional token cache, the container and
// the HTTP server, then blocks until SIGINT or SIGTERM and drains within
// the configured shutdown timeout.
func StartServer(ctx context.Context, cfg *config.Config, metrics *telemetry.AppMetrics, logger *otelzap.Logger) error {
	repos, closeDB, err := openRepositories(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeDB()

	tokens, closeRedis := openTokenCache(cfg, logger)
	defer closeRedis()

	container := NewContainer(repos, tokens, metrics)

	router := SetupRouter(container, metrics, logger, cfg.AppName)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("database_driver", cfg.Database.Driver))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Context.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config) (Repositories, func(), error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx)
		if err != nil {
			return Repositories{}, nil, err
		}

		return Repositories{
			Users: postgresrepo.NewUserRepository(db),
			Tasks: postgresrepo.NewTaskRepository(db),
		}, db.Close, nil
	case "sqlite":
		db, err := sqlite.NewDB()
		if err != nil {
			return Repositories{}, nil, err
		}

		return Repositories{
			Users: sqliterepo.NewUserRepository(db),
			Tasks: sqliterepo.NewTaskRepository(db),
		}, func() { db.Close() }, nil
	default:
		return Repositories{}, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func openTokenCache(cfg *config.Config, logger *otelzap.Logger) (port.TokenCache, func()) {
	if !cfg.Redis.Enabled {
		return nil, func() {}
	}

	client := redislib.NewClient(&redislib.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	logger.Info("token cache enabled", zap.String("addr", cfg.Redis.Addr))

	return cache.NewTokenCache(client, cfg.Redis.TokenTTL), func() { client.Close() }
}
