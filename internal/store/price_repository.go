package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Price is one daily row of stock_prices
type Price struct {
	Ticker       string    `json:"ticker"`
	TradeDate    time.Time `json:"trade_date"`
	Open         int64     `json:"open"`
	High         int64     `json:"high"`
	Low          int64     `json:"low"`
	Close        int64     `json:"close"`
	Change       int64     `json:"change"`
	ChangeRate   float64   `json:"change_rate"`
	Volume       int64     `json:"volume"`
	TradingValue int64     `json:"trading_value"`
	MarketCap    int64     `json:"market_cap"`
}

// PriceRepository stores daily prices keyed by (ticker, trade_date)
// ⭐ SSOT: 가격 데이터 저장소는 여기서만
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// UpsertPrices writes all rows in one batch; an existing (ticker, trade_date) is overwritten
func (r *PriceRepository) UpsertPrices(ctx context.Context, prices []Price) error {
	if len(prices) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO stock_prices
			(ticker, trade_date, open, high, low, close, change, change_rate, volume, trading_value, market_cap, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (ticker, trade_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			change = EXCLUDED.change,
			change_rate = EXCLUDED.change_rate,
			volume = EXCLUDED.volume,
			trading_value = EXCLUDED.trading_value,
			market_cap = EXCLUDED.market_cap,
			updated_at = NOW()`

	for _, p := range prices {
		batch.Queue(query, p.Ticker, p.TradeDate, p.Open, p.High, p.Low, p.Close,
			p.Change, p.ChangeRate, p.Volume, p.TradingValue, p.MarketCap)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range prices {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert price: %w", err)
		}
	}
	return nil
}

// GetHistory returns prices in [from, to] ordered by trade date ascending
func (r *PriceRepository) GetHistory(ctx context.Context, ticker string, from, to time.Time) ([]Price, error) {
	query := `
		SELECT ticker, trade_date, open, high, low, close, change, change_rate, volume, trading_value, market_cap
		FROM stock_prices
		WHERE ticker = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC`

	rows, err := r.pool.Query(ctx, query, ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("query price history: %w", err)
	}
	defer rows.Close()

	prices := []Price{}
	for rows.Next() {
		var p Price
		if err := rows.Scan(&p.Ticker, &p.TradeDate, &p.Open, &p.High, &p.Low, &p.Close,
			&p.Change, &p.ChangeRate, &p.Volume, &p.TradingValue, &p.MarketCap); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
