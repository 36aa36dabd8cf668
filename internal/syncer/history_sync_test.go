package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/mbtistock/internal/external/dataportal"
	"github.com/wonny/mbtistock/internal/store"
	"github.com/wonny/mbtistock/pkg/kst"
	"github.com/wonny/mbtistock/pkg/logger"
)

func TestHistorySync_Window(t *testing.T) {
	sync := NewHistorySync(&fakePriceFetcher{}, &fakePriceStore{}, &fakeEntities{}, HistorySyncConfig{Months: 1}, logger.Nop())

	from, to := sync.Window(fixedClock())
	assert.True(t, from.Equal(kst.Date(2025, 2, 10)))
	assert.True(t, to.Equal(kst.Date(2025, 3, 10)))
}

func TestHistorySync_Run(t *testing.T) {
	entities := &fakeEntities{stocks: []store.Stock{
		{Ticker: "005930"},
		{Ticker: "000660"}, // fetch error
		{Ticker: "035420"}, // no rows
		{Ticker: "035720"}, // upsert fails
	}}
	day := kst.Date(2025, 3, 7)
	fetcher := &fakePriceFetcher{
		byTicker: map[string][]dataportal.DailyPrice{
			"005930": {{Ticker: "005930", TradeDate: day, Open: 1, High: 3, Low: 1, Close: 2, Volume: 10, MarketCap: 99}},
			"035720": {{Ticker: "035720", TradeDate: day, Close: 5}},
		},
		errs: map[string]error{"000660": assert.AnError},
	}
	prices := &fakePriceStore{failFor: map[string]bool{"035720": true}}

	sync := NewHistorySync(fetcher, prices, entities, HistorySyncConfig{Months: 1}, logger.Nop()).
		WithClock(fixedClock)

	summary, err := sync.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 3, summary.Failed)

	require.Len(t, prices.rows, 1)
	row := prices.rows[0]
	assert.Equal(t, "005930", row.Ticker)
	assert.True(t, row.TradeDate.Equal(day))
	assert.Equal(t, int64(2), row.Close)
	assert.Equal(t, int64(99), row.MarketCap)

	require.Len(t, fetcher.queries, 4)
	assert.True(t, fetcher.queries[0].From.Equal(kst.Date(2025, 2, 10)))
	assert.True(t, fetcher.queries[0].To.Equal(kst.Date(2025, 3, 10)))
}
