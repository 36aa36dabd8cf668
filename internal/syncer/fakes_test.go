package syncer

import (
	"context"
	"errors"

	"github.com/wonny/mbtistock/internal/external/dart"
	"github.com/wonny/mbtistock/internal/external/dataportal"
	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/internal/store"
)

var errUpsert = errors.New("upsert rejected")

type fakeFetcher struct {
	byCorp  map[string][]financial.StatementLineItem
	errs    map[string]error
	queries []dart.StatementQuery
}

func (f *fakeFetcher) FetchFinancialStatements(_ context.Context, q dart.StatementQuery) ([]financial.StatementLineItem, error) {
	f.queries = append(f.queries, q)
	if err := f.errs[q.CorpCode]; err != nil {
		return nil, err
	}
	return f.byCorp[q.CorpCode], nil
}

type fakeRatioStore struct {
	records map[string]financial.RatioRecord
	failFor map[string]bool
}

func (s *fakeRatioStore) Upsert(_ context.Context, rec financial.RatioRecord) error {
	if s.failFor[rec.Ticker] {
		return errUpsert
	}
	if s.records == nil {
		s.records = map[string]financial.RatioRecord{}
	}
	s.records[rec.Ticker] = rec
	return nil
}

type fakeEntities struct {
	stocks  []store.Stock
	listErr error
	marked  []string
}

func (e *fakeEntities) ListTracked(context.Context) ([]store.Stock, error) {
	return e.stocks, e.listErr
}

func (e *fakeEntities) ListAll(context.Context) ([]store.Stock, error) {
	return e.stocks, e.listErr
}

// MarkFinancialData rejects a dead context the way pgx does
func (e *fakeEntities) MarkFinancialData(ctx context.Context, tickers []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.marked = append(e.marked, tickers...)
	return nil
}

type fakePriceFetcher struct {
	byTicker map[string][]dataportal.DailyPrice
	errs     map[string]error
	queries  []dataportal.PriceQuery
}

func (f *fakePriceFetcher) FetchPrices(_ context.Context, q dataportal.PriceQuery) ([]dataportal.DailyPrice, error) {
	f.queries = append(f.queries, q)
	if err := f.errs[q.Ticker]; err != nil {
		return nil, err
	}
	return f.byTicker[q.Ticker], nil
}

type fakePriceStore struct {
	rows    []store.Price
	failFor map[string]bool
}

func (s *fakePriceStore) UpsertPrices(_ context.Context, prices []store.Price) error {
	if len(prices) > 0 && s.failFor[prices[0].Ticker] {
		return errUpsert
	}
	s.rows = append(s.rows, prices...)
	return nil
}
