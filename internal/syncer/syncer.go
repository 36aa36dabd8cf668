// Package syncer runs the sequential per-entity sync loops that fill the store
// from OpenDART and the data portal.
package syncer

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/mbtistock/internal/external/dart"
	"github.com/wonny/mbtistock/internal/external/dataportal"
	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/internal/store"
)

// StatementFetcher fetches one entity's statement line items
type StatementFetcher interface {
	FetchFinancialStatements(ctx context.Context, q dart.StatementQuery) ([]financial.StatementLineItem, error)
}

// RatioStore persists a whole ratio record
type RatioStore interface {
	Upsert(ctx context.Context, rec financial.RatioRecord) error
}

// EntityStore lists tracked entities and flags them after a financial run
type EntityStore interface {
	ListTracked(ctx context.Context) ([]store.Stock, error)
	MarkFinancialData(ctx context.Context, tickers []string) error
}

// StockLister lists every stock for the price loop
type StockLister interface {
	ListAll(ctx context.Context) ([]store.Stock, error)
}

// PriceFetcher fetches daily prices for one ticker
type PriceFetcher interface {
	FetchPrices(ctx context.Context, q dataportal.PriceQuery) ([]dataportal.DailyPrice, error)
}

// PriceStore persists daily prices
type PriceStore interface {
	UpsertPrices(ctx context.Context, prices []store.Price) error
}

// Summary is the aggregate outcome of one run
type Summary struct {
	Total         int           `json:"total"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	FailedTickers []string      `json:"failed_tickers,omitempty"`
	FiscalYear    int           `json:"fiscal_year,omitempty"`
	Duration      time.Duration `json:"duration"`
}

func (s *Summary) fail(ticker string) {
	s.Failed++
	s.FailedTickers = append(s.FailedTickers, ticker)
}

// newPacer spaces entity calls at least delay apart; delay <= 0 disables pacing
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
