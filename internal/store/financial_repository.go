package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/mbtistock/internal/financial"
)

// FinancialRepository stores ratio records keyed by (ticker, fiscal_year)
// ⭐ SSOT: 재무 비율 저장소는 여기서만
type FinancialRepository struct {
	pool *pgxpool.Pool
}

// NewFinancialRepository creates a new financial repository
func NewFinancialRepository(pool *pgxpool.Pool) *FinancialRepository {
	return &FinancialRepository{pool: pool}
}

const financialColumns = `ticker, fiscal_year, receipt_no, revenue, operating_income, net_income,
	total_assets, total_liabilities, total_equity,
	operating_margin, net_profit_margin, debt_ratio, roe,
	profitability_level, stability_level, growth_level, updated_at`

// Upsert overwrites the whole record for (ticker, fiscal_year)
func (r *FinancialRepository) Upsert(ctx context.Context, rec financial.RatioRecord) error {
	query := `
		INSERT INTO financials (` + financialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		ON CONFLICT (ticker, fiscal_year) DO UPDATE SET
			receipt_no = EXCLUDED.receipt_no,
			revenue = EXCLUDED.revenue,
			operating_income = EXCLUDED.operating_income,
			net_income = EXCLUDED.net_income,
			total_assets = EXCLUDED.total_assets,
			total_liabilities = EXCLUDED.total_liabilities,
			total_equity = EXCLUDED.total_equity,
			operating_margin = EXCLUDED.operating_margin,
			net_profit_margin = EXCLUDED.net_profit_margin,
			debt_ratio = EXCLUDED.debt_ratio,
			roe = EXCLUDED.roe,
			profitability_level = EXCLUDED.profitability_level,
			stability_level = EXCLUDED.stability_level,
			growth_level = EXCLUDED.growth_level,
			updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		rec.Ticker, rec.FiscalYear, rec.ReceiptNo,
		rec.Revenue, rec.OperatingIncome, rec.NetIncome,
		rec.TotalAssets, rec.TotalLiabilities, rec.TotalEquity,
		rec.OperatingMargin, rec.NetProfitMargin, rec.DebtRatio, rec.ROE,
		string(rec.ProfitabilityLevel), string(rec.StabilityLevel), string(rec.GrowthLevel),
	)
	if err != nil {
		return fmt.Errorf("upsert financials %s/%d: %w", rec.Ticker, rec.FiscalYear, err)
	}
	return nil
}

// GetLatest returns the most recent fiscal year on file for ticker
func (r *FinancialRepository) GetLatest(ctx context.Context, ticker string) (*financial.RatioRecord, error) {
	query := `SELECT ` + financialColumns + `
		FROM financials
		WHERE ticker = $1
		ORDER BY fiscal_year DESC
		LIMIT 1`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, ticker))
	if err != nil {
		return nil, notFound(err)
	}
	return rec, nil
}

// ListLatest returns each ticker's most recent record
func (r *FinancialRepository) ListLatest(ctx context.Context) ([]financial.RatioRecord, error) {
	query := `SELECT DISTINCT ON (ticker) ` + financialColumns + `
		FROM financials
		ORDER BY ticker, fiscal_year DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query financials: %w", err)
	}
	defer rows.Close()

	var records []financial.RatioRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan financials: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*financial.RatioRecord, error) {
	var (
		rec                              financial.RatioRecord
		profitability, stability, growth string
	)
	err := row.Scan(
		&rec.Ticker, &rec.FiscalYear, &rec.ReceiptNo,
		&rec.Revenue, &rec.OperatingIncome, &rec.NetIncome,
		&rec.TotalAssets, &rec.TotalLiabilities, &rec.TotalEquity,
		&rec.OperatingMargin, &rec.NetProfitMargin, &rec.DebtRatio, &rec.ROE,
		&profitability, &stability, &growth, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ProfitabilityLevel = financial.ProfitabilityLevel(profitability)
	rec.StabilityLevel = financial.StabilityLevel(stability)
	rec.GrowthLevel = financial.GrowthLevel(growth)
	return &rec, nil
}
