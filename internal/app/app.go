// Package app assembles the ledger services from configuration. Both the
// HTTP server and the admin CLI start from here.
package app

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/core/services"
	"github.com/SscSPs/gl_backend/internal/importer"
	"github.com/SscSPs/gl_backend/internal/platform/analytics"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/SscSPs/gl_backend/internal/platform/lock"
	"github.com/SscSPs/gl_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/gl_backend/internal/repositories/memory"
	"github.com/SscSPs/gl_backend/pkg/database"
)

// App is a fully wired set of services plus the resources backing them.
type App struct {
	Config    *config.Config
	Services  *portssvc.ServiceContainer
	Analytics *analytics.Client

	logger  *slog.Logger
	closers []func()
}

type options struct {
	localImports bool
}

// Option configures New.
type Option func(*options)

// WithLocalImports lets imports read file:// URLs and plain paths.
func WithLocalImports() Option {
	return func(o *options) {
		o.localImports = true
	}
}

// New connects storage, the recalculation locker and the import fetcher, then
// builds the service container. Call Close when done, also on error paths after success.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, logger: logger}

	repos, err := a.repositories(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	locker, err := a.locker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	fetcher, err := a.fetcher(ctx, o)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Analytics = analytics.New(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	a.closers = append(a.closers, a.Analytics.Close)

	a.Services = services.NewServiceContainer(cfg, repos, services.Dependencies{
		Locker:     locker,
		FileReader: fetcher,
	})
	return a, nil
}

func (a *App) repositories(ctx context.Context) (portsrepo.RepositoryProvider, error) {
	if a.Config.StorageDriver == config.StorageMemory {
		a.logger.Warn("Using in-memory storage; data is lost on exit")
		return memory.NewStore().NewRepositoryProvider(), nil
	}

	pool, err := database.NewPgxPool(ctx, a.Config.DatabaseURL, a.Config.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	a.closers = append(a.closers, func() { database.ClosePgxPool(pool) })
	return pgsql.NewRepositoryProvider(pool), nil
}

func (a *App) locker(ctx context.Context) (lock.Locker, error) {
	if a.Config.RedisAddress == "" {
		a.logger.Info("REDIS_ADDRESS not set, recalculation lock is process-local")
		return lock.NewLocalLocker(), nil
	}

	rdb, err := lock.Connect(ctx, a.Config.RedisAddress)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := rdb.Close(); err != nil {
			a.logger.Warn("Failed to close redis client", slog.String("error", err.Error()))
		}
	})
	a.logger.Info("Recalculation lock backed by redis", slog.String("address", a.Config.RedisAddress))
	return lock.NewRedisLocker(rdb), nil
}

func (a *App) fetcher(ctx context.Context, o *options) (*importer.Fetcher, error) {
	fetchOpts := []importer.Option{importer.WithBearerToken(ctx, a.Config.ImportHTTPBearerToken)}

	if a.Config.GCSEnabled {
		gcs, err := importer.NewGCSClient(ctx, a.Config.GCSCredentialsJSON)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := gcs.Close(); err != nil {
				a.logger.Warn("Failed to close storage client", slog.String("error", err.Error()))
			}
		})
		fetchOpts = append(fetchOpts, importer.WithGCSClient(gcs))
	}
	if o.localImports {
		fetchOpts = append(fetchOpts, importer.WithLocalFiles())
	}
	return importer.NewFetcher(fetchOpts...), nil
}

// Close releases everything New opened, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
