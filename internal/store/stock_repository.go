package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Stock is a tracked entity
type Stock struct {
	Ticker           string    `json:"ticker"`
	Name             string    `json:"name"`
	CorpCode         string    `json:"corp_code,omitempty"`
	Sector           string    `json:"sector"`
	Market           string    `json:"market"`
	HasFinancialData bool      `json:"has_financial_data"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StockRepository reads and flags tracked stocks
// ⭐ SSOT: 종목 마스터 저장소는 여기서만
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new stock repository
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

const stockColumns = `ticker, name, COALESCE(corp_code, ''), sector, market, has_financial_data, updated_at`

// ListTracked returns stocks that have an OpenDART corp code, ordered by ticker
func (r *StockRepository) ListTracked(ctx context.Context) ([]Stock, error) {
	query := `SELECT ` + stockColumns + `
		FROM stocks
		WHERE corp_code IS NOT NULL AND corp_code <> ''
		ORDER BY ticker`
	return r.list(ctx, query)
}

// ListAll returns every stock ordered by ticker
func (r *StockRepository) ListAll(ctx context.Context) ([]Stock, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM stocks ORDER BY ticker`)
}

func (r *StockRepository) list(ctx context.Context, query string) ([]Stock, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stocks: %w", err)
	}
	defer rows.Close()

	var stocks []Stock
	for rows.Next() {
		var s Stock
		if err := rows.Scan(&s.Ticker, &s.Name, &s.CorpCode, &s.Sector, &s.Market, &s.HasFinancialData, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

// Get returns one stock or ErrNotFound
func (r *StockRepository) Get(ctx context.Context, ticker string) (*Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE ticker = $1`

	var s Stock
	err := r.pool.QueryRow(ctx, query, ticker).Scan(
		&s.Ticker, &s.Name, &s.CorpCode, &s.Sector, &s.Market, &s.HasFinancialData, &s.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// MarkFinancialData sets has_financial_data for every given ticker
func (r *StockRepository) MarkFinancialData(ctx context.Context, tickers []string) error {
	if len(tickers) == 0 {
		return nil
	}

	query := `
		UPDATE stocks
		SET has_financial_data = TRUE, updated_at = NOW()
		WHERE ticker = ANY($1)`

	if _, err := r.pool.Exec(ctx, query, tickers); err != nil {
		return fmt.Errorf("mark financial data: %w", err)
	}
	return nil
}
