package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/pkg/kst"
)

// testPool connects to DATABASE_URL, applies the schema and inserts a scratch stock
func testPool(t *testing.T, ticker string) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))

	_, err = pool.Exec(ctx,
		`INSERT INTO stocks (ticker, name, corp_code, sector, market) VALUES ($1, '테스트', '99999999', 'IT', 'KOSPI')
		 ON CONFLICT (ticker) DO UPDATE SET has_financial_data = FALSE`, ticker)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM stocks WHERE ticker = $1`, ticker)
	})

	return pool
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := testPool(t, "T00001")
	assert.NoError(t, Migrate(context.Background(), pool))
}

func TestStockRepository(t *testing.T) {
	pool := testPool(t, "T00002")
	repo := NewStockRepository(pool)
	ctx := context.Background()

	s, err := repo.Get(ctx, "T00002")
	require.NoError(t, err)
	assert.Equal(t, "99999999", s.CorpCode)
	assert.False(t, s.HasFinancialData)

	require.NoError(t, repo.MarkFinancialData(ctx, []string{"T00002"}))

	s, err = repo.Get(ctx, "T00002")
	require.NoError(t, err)
	assert.True(t, s.HasFinancialData)

	tracked, err := repo.ListTracked(ctx)
	require.NoError(t, err)
	var found bool
	for _, st := range tracked {
		if st.Ticker == "T00002" {
			found = true
		}
	}
	assert.True(t, found)

	_, err = repo.Get(ctx, "NOPE00")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPriceRepository_UpsertAndHistory(t *testing.T) {
	pool := testPool(t, "T00003")
	repo := NewPriceRepository(pool)
	ctx := context.Background()

	day1 := kst.Date(2024, 1, 4)
	day2 := kst.Date(2024, 1, 5)

	require.NoError(t, repo.UpsertPrices(ctx, []Price{
		{Ticker: "T00003", TradeDate: day1, Close: 100},
		{Ticker: "T00003", TradeDate: day2, Close: 110},
	}))
	// same key again overwrites
	require.NoError(t, repo.UpsertPrices(ctx, []Price{
		{Ticker: "T00003", TradeDate: day2, Close: 120},
	}))

	history, err := repo.GetHistory(ctx, "T00003", day1, day2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(100), history[0].Close)
	assert.Equal(t, int64(120), history[1].Close)
}

func TestFinancialRepository_UpsertOverwrites(t *testing.T) {
	pool := testPool(t, "T00004")
	repo := NewFinancialRepository(pool)
	ctx := context.Background()

	first := financial.NewRatioRecord("T00004", 2023, financial.Ratios{
		Revenue:            2,
		OperatingMargin:    15,
		ProfitabilityLevel: financial.ProfitabilityHigh,
		StabilityLevel:     financial.StabilityModerate,
		GrowthLevel:        financial.GrowthStable,
	})
	first.ReceiptNo = "20240301000001"
	require.NoError(t, repo.Upsert(ctx, first))

	second := first
	second.ReceiptNo = "20240312000736"
	second.Revenue = 5
	second.ProfitabilityLevel = financial.ProfitabilityLow
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.GetLatest(ctx, "T00004")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Revenue)
	assert.Equal(t, financial.ProfitabilityLow, got.ProfitabilityLevel)
	assert.False(t, got.UpdatedAt.IsZero())

	latest, err := repo.ListLatest(ctx)
	require.NoError(t, err)
	var count int
	for _, rec := range latest {
		if rec.Ticker == "T00004" {
			count++
			assert.Equal(t, "20240312000736", rec.ReceiptNo)
		}
	}
	assert.Equal(t, 1, count)

	_, err = repo.GetLatest(ctx, "NOPE00")
	assert.True(t, errors.Is(err, ErrNotFound))
}
