package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/mbtistock/internal/cache"
	"github.com/wonny/mbtistock/internal/external/dart"
	"github.com/wonny/mbtistock/internal/external/dataportal"
	"github.com/wonny/mbtistock/internal/mbti"
	"github.com/wonny/mbtistock/internal/store"
	"github.com/wonny/mbtistock/internal/syncer"
	"github.com/wonny/mbtistock/pkg/config"
	"github.com/wonny/mbtistock/pkg/database"
	"github.com/wonny/mbtistock/pkg/httputil"
	"github.com/wonny/mbtistock/pkg/logger"
	"github.com/wonny/mbtistock/pkg/redis"
)

const (
	cacheTTL    = 10 * time.Minute
	cachePrefix = "mbtistock"
)

// app holds what every command needs: config, logger and the pool
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB
	closers []func() error
}

// bootstrap loads config, runs the per-command precondition and connects.
// Any failure here ends the process before work begins.
func bootstrap(ctx context.Context, require ...func(*config.Config) error) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	for _, check := range require {
		if err := check(cfg); err != nil {
			return nil, err
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	db, err := database.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
	a.db.Close()
}

// openCache returns the Redis-backed cache when REDIS_ENABLED, otherwise an in-process one
func (a *app) openCache(ctx context.Context) (*cache.Cache, error) {
	if !a.cfg.Redis.Enabled {
		return cache.New(cache.NewMemory(), cacheTTL), nil
	}
	rc, err := redis.New(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, rc.Close)
	return cache.New(redis.NewCache(rc, cachePrefix), cacheTTL), nil
}

// financialCacheHook drops the API views a financial sync makes stale.
// Only Redis is shared with the API process, so without it the hook is nil.
func (a *app) financialCacheHook(ctx context.Context) (func(context.Context) error, error) {
	if !a.cfg.Redis.Enabled {
		return nil, nil
	}
	c, err := a.openCache(ctx)
	if err != nil {
		return nil, err
	}

	types := make([]string, 0, 16)
	for _, t := range mbti.AllTypes() {
		types = append(types, t.String())
	}
	keys := cache.FinancialKeys(types, mbti.MaxPortfolioSize)

	return func(ctx context.Context) error {
		return c.Invalidate(ctx, keys...)
	}, nil
}

func (a *app) financialSync() *syncer.FinancialSync {
	dartClient := dart.NewClient(a.cfg.DART.APIKey, a.cfg.DART.BaseURL, a.log)

	return syncer.NewFinancialSync(
		dartClient,
		store.NewFinancialRepository(a.db.Pool),
		store.NewStockRepository(a.db.Pool),
		syncer.FinancialSyncConfig{
			ReportCode:    a.cfg.DART.ReportCode,
			FsDiv:         a.cfg.DART.FsDiv,
			Delay:         a.cfg.Sync.Delay,
			FiscalYearLag: a.cfg.Sync.FiscalYearLag,
		},
		a.log,
	)
}

func (a *app) historySync() *syncer.HistorySync {
	portal := dataportal.NewClient(
		httputil.New(a.log),
		a.cfg.DataPortal.ServiceKey,
		a.cfg.DataPortal.BaseURL,
		a.cfg.DataPortal.PageSize,
		a.log,
	)

	return syncer.NewHistorySync(
		portal,
		store.NewPriceRepository(a.db.Pool),
		store.NewStockRepository(a.db.Pool),
		syncer.HistorySyncConfig{
			Months: a.cfg.Sync.HistoryMonths,
			Delay:  a.cfg.Sync.Delay,
		},
		a.log,
	)
}
