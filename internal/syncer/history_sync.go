package syncer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/mbtistock/internal/external/dataportal"
	"github.com/wonny/mbtistock/internal/store"
	"github.com/wonny/mbtistock/pkg/kst"
	"github.com/wonny/mbtistock/pkg/logger"
)

// HistorySyncConfig controls the price loop
type HistorySyncConfig struct {
	Months int
	Delay  time.Duration
}

// HistorySync pulls the recent daily price window for every stock and upserts it
// keyed by (ticker, trade_date).
// ⭐ SSOT: 일별 시세 동기화 루프는 여기서만
type HistorySync struct {
	fetcher PriceFetcher
	prices  PriceStore
	stocks  StockLister
	cfg     HistorySyncConfig
	pacer   *rate.Limiter
	now     func() time.Time
	logger  *logger.Logger
}

// NewHistorySync creates the price history loop
func NewHistorySync(fetcher PriceFetcher, prices PriceStore, stocks StockLister, cfg HistorySyncConfig, log *logger.Logger) *HistorySync {
	if cfg.Months <= 0 {
		cfg.Months = 1
	}
	return &HistorySync{
		fetcher: fetcher,
		prices:  prices,
		stocks:  stocks,
		cfg:     cfg,
		pacer:   newPacer(cfg.Delay),
		now:     kst.Now,
		logger:  log.Module("history_sync"),
	}
}

// WithClock overrides the time source used to pick the window
func (s *HistorySync) WithClock(now func() time.Time) *HistorySync {
	s.now = now
	return s
}

// Window returns the inclusive [from, to] date range for a run at t
func (s *HistorySync) Window(t time.Time) (time.Time, time.Time) {
	to := kst.Truncate(t)
	return to.AddDate(0, -s.cfg.Months, 0), to
}

// Run fetches and upserts prices for every stock, one at a time
func (s *HistorySync) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	from, to := s.Window(s.now())
	var summary Summary

	stocks, err := s.stocks.ListAll(ctx)
	if err != nil {
		return summary, fmt.Errorf("list stocks: %w", err)
	}
	summary.Total = len(stocks)

	s.logger.WithFields(map[string]interface{}{
		"stocks": len(stocks),
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}).Info("Starting price history sync")

	var runErr error
	for _, stock := range stocks {
		if err := s.pacer.Wait(ctx); err != nil {
			runErr = err
			break
		}

		if s.syncOne(ctx, stock.Ticker, from, to) {
			summary.Succeeded++
		} else {
			summary.fail(stock.Ticker)
		}
	}

	summary.Duration = time.Since(start)
	s.logger.WithFields(map[string]interface{}{
		"total":    summary.Total,
		"success":  summary.Succeeded,
		"failed":   summary.Failed,
		"duration": summary.Duration.String(),
	}).Info("Price history sync completed")

	return summary, runErr
}

func (s *HistorySync) syncOne(ctx context.Context, ticker string, from, to time.Time) bool {
	log := s.logger.WithField("ticker", ticker)

	daily, err := s.fetcher.FetchPrices(ctx, dataportal.PriceQuery{Ticker: ticker, From: from, To: to})
	if err != nil {
		log.WithError(err).Warn("Failed to fetch prices")
		return false
	}
	if len(daily) == 0 {
		log.Warn("No prices in window")
		return false
	}

	rows := make([]store.Price, 0, len(daily))
	for _, d := range daily {
		rows = append(rows, store.Price{
			Ticker:       ticker,
			TradeDate:    d.TradeDate,
			Open:         d.Open,
			High:         d.High,
			Low:          d.Low,
			Close:        d.Close,
			Change:       d.Change,
			ChangeRate:   d.ChangeRate,
			Volume:       d.Volume,
			TradingValue: d.TradingValue,
			MarketCap:    d.MarketCap,
		})
	}

	if err := s.prices.UpsertPrices(ctx, rows); err != nil {
		log.WithError(err).Error("Failed to upsert prices")
		return false
	}

	log.WithField("count", len(rows)).Debug("Prices saved")
	return true
}
