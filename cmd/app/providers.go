package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/unievents/internal/bootstrap"
	"github.com/yanqian/unievents/internal/domain/auth"
	"github.com/yanqian/unievents/internal/domain/calendar"
	"github.com/yanqian/unievents/internal/domain/club"
	"github.com/yanqian/unievents/internal/domain/event"
	"github.com/yanqian/unievents/internal/infra/clubrepo"
	"github.com/yanqian/unievents/internal/infra/config"
	"github.com/yanqian/unievents/internal/infra/demodata"
	"github.com/yanqian/unievents/internal/infra/eventcache"
	"github.com/yanqian/unievents/internal/infra/eventrepo"
	"github.com/yanqian/unievents/internal/infra/logostore"
	"github.com/yanqian/unievents/internal/infra/tokenstore"
	"github.com/yanqian/unievents/internal/infra/userrepo"
	"github.com/yanqian/unievents/pkg/util"
)

// clubStore is what both the club service and the demo seeder need from club storage.
type clubStore interface {
	club.Repository
	demodata.ClubWriter
}

func provideLocation(cfg *config.Config) (*time.Location, error) {
	return util.LoadLocation(cfg.Calendar.Timezone)
}

func provideCalendarConfig(cfg *config.Config, loc *time.Location) calendar.Config {
	return calendar.Config{
		Grid: calendar.GridConfig{
			StartHour: cfg.Calendar.StartHour,
			EndHour:   cfg.Calendar.EndHour,
		},
		Location: loc,
	}
}

func provideEventConfig(cfg *config.Config, loc *time.Location) event.Config {
	return event.Config{
		CacheTTL: cfg.Calendar.CacheTTL,
		Location: loc,
	}
}

func provideClubConfig(cfg *config.Config, loc *time.Location) club.Config {
	return club.Config{
		Location:     loc,
		MaxLogoBytes: cfg.Storage.ObjectStorage.MaxLogoBytes,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

// providePostgresPool returns nil when no DSN is configured or the database is unreachable;
// repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	dsn := strings.TrimSpace(cfg.Storage.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil, func() {}
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil, func() {}
	}
	if cfg.Storage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.Postgres.MaxConns
	}
	if cfg.Storage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil, func() {}
	}
	logger.Info("postgres repositories enabled")
	return pool, pool.Close
}

// provideValkeyClient returns nil when valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	if !cfg.Storage.Valkey.Enabled {
		return nil, func() {}
	}
	opt, err := buildValkeyOptions(cfg.Storage.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory", "error", err)
		return nil, func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory", "error", err)
		return nil, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory", "error", err)
		client.Close()
		return nil, func() {}
	}
	logger.Info("valkey enabled", "addr", cfg.Storage.Valkey.Addr)
	return client, client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideEventRepository(pool *pgxpool.Pool) event.Repository {
	if pool == nil {
		return eventrepo.NewMemoryRepository()
	}
	return eventrepo.NewPostgresRepository(pool)
}

func provideClubStore(pool *pgxpool.Pool) clubStore {
	if pool == nil {
		return clubrepo.NewMemoryRepository()
	}
	return clubrepo.NewPostgresRepository(pool)
}

func provideClubRepository(store clubStore) club.Repository {
	return store
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideEventCache(cfg *config.Config, client valkey.Client) event.RangeCache {
	if client == nil {
		return eventcache.NewMemoryCache()
	}
	return eventcache.NewValkeyCache(client, cfg.Storage.Valkey.Prefix)
}

func provideRevocationStore(cfg *config.Config, client valkey.Client) auth.RevocationStore {
	if client == nil {
		return tokenstore.NewMemoryStore()
	}
	return tokenstore.NewValkeyStore(client, cfg.Storage.Valkey.Prefix)
}

func provideLogoStorage(cfg *config.Config, logger *slog.Logger) club.LogoStorage {
	storeCfg := cfg.Storage.ObjectStorage
	if !storeCfg.Configured() {
		logger.Info("object storage not configured, keeping logos in memory")
		return logostore.NewMemoryStorage()
	}
	storage, err := logostore.NewR2Storage(storeCfg.Endpoint, storeCfg.AccessKey, storeCfg.SecretKey, storeCfg.Bucket, storeCfg.Region, logger)
	if err != nil {
		logger.Error("failed to initialize object storage, keeping logos in memory", "error", err)
		return logostore.NewMemoryStorage()
	}
	return storage
}

func provideEventSource(svc event.Service) calendar.EventSource {
	return svc
}

func provideEventLister(svc event.Service) club.EventLister {
	return svc
}

func provideSeeder(cfg *config.Config, logger *slog.Logger, users auth.Repository, clubs clubStore, events event.Repository) bootstrap.Seeder {
	if !cfg.Seed.DemoData {
		return nil
	}
	return func(ctx context.Context) error {
		return demodata.Seed(ctx, users, clubs, events, logger)
	}
}
