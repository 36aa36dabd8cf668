package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/mbtistock/internal/external/dart"
	"github.com/wonny/mbtistock/internal/financial"
	"github.com/wonny/mbtistock/pkg/kst"
	"github.com/wonny/mbtistock/pkg/logger"
)

// flagTimeout bounds the has_financial_data write after the loop
const flagTimeout = 10 * time.Second

// FinancialSyncConfig controls the statement loop
type FinancialSyncConfig struct {
	ReportCode    string
	FsDiv         string
	Delay         time.Duration
	FiscalYearLag int
}

// FinancialSync fetches statements per tracked entity, computes ratios and upserts them.
// Entities are processed one at a time; a failed entity is counted and skipped, never retried.
// ⭐ SSOT: 재무 비율 동기화 루프는 여기서만
type FinancialSync struct {
	fetcher  StatementFetcher
	ratios   RatioStore
	entities EntityStore
	cfg      FinancialSyncConfig
	pacer    *rate.Limiter
	now      func() time.Time
	logger   *logger.Logger
}

// NewFinancialSync creates the financial sync loop
func NewFinancialSync(fetcher StatementFetcher, ratios RatioStore, entities EntityStore, cfg FinancialSyncConfig, log *logger.Logger) *FinancialSync {
	if cfg.ReportCode == "" {
		cfg.ReportCode = dart.ReportAnnual
	}
	if cfg.FsDiv == "" {
		cfg.FsDiv = dart.FsDivConsolidated
	}
	return &FinancialSync{
		fetcher:  fetcher,
		ratios:   ratios,
		entities: entities,
		cfg:      cfg,
		pacer:    newPacer(cfg.Delay),
		now:      kst.Now,
		logger:   log.Module("financial_sync"),
	}
}

// WithClock overrides the time source used to pick the fiscal year
func (s *FinancialSync) WithClock(now func() time.Time) *FinancialSync {
	s.now = now
	return s
}

// FiscalYear is the filing year targeted by a run at t (lagged so the filing is final)
func (s *FinancialSync) FiscalYear(t time.Time) int {
	return t.In(kst.Location).Year() - s.cfg.FiscalYearLag
}

// Run processes every tracked entity. Per-entity failures never abort the run;
// only listing entities, flagging them, or cancellation returns an error.
func (s *FinancialSync) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	year := s.FiscalYear(s.now())
	summary := Summary{FiscalYear: year}

	stocks, err := s.entities.ListTracked(ctx)
	if err != nil {
		return summary, fmt.Errorf("list tracked stocks: %w", err)
	}
	summary.Total = len(stocks)

	s.logger.WithFields(map[string]interface{}{
		"fiscal_year": year,
		"stocks":      len(stocks),
		"report_code": s.cfg.ReportCode,
		"fs_div":      s.cfg.FsDiv,
	}).Info("Starting financial sync")

	attempted := make([]string, 0, len(stocks))
	var runErr error

	for _, stock := range stocks {
		if err := s.pacer.Wait(ctx); err != nil {
			runErr = err
			break
		}

		attempted = append(attempted, stock.Ticker)
		if s.syncOne(ctx, stock.Ticker, stock.CorpCode, year) {
			summary.Succeeded++
		} else {
			summary.fail(stock.Ticker)
		}
	}

	// a cancelled run still flags what it attempted
	flagCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flagTimeout)
	defer cancel()
	if err := s.entities.MarkFinancialData(flagCtx, attempted); err != nil {
		s.logger.WithError(err).Error("Failed to flag attempted stocks")
		if runErr == nil {
			runErr = err
		}
	}

	summary.Duration = time.Since(start)
	s.logger.WithFields(map[string]interface{}{
		"fiscal_year": year,
		"total":       summary.Total,
		"success":     summary.Succeeded,
		"failed":      summary.Failed,
		"duration":    summary.Duration.String(),
	}).Info("Financial sync completed")

	return summary, runErr
}

// syncOne returns true when a complete record was upserted
func (s *FinancialSync) syncOne(ctx context.Context, ticker, corpCode string, year int) bool {
	log := s.logger.WithFields(map[string]interface{}{
		"ticker":    ticker,
		"corp_code": corpCode,
	})

	items, err := s.fetcher.FetchFinancialStatements(ctx, dart.StatementQuery{
		CorpCode:   corpCode,
		Year:       year,
		ReportCode: s.cfg.ReportCode,
		FsDiv:      s.cfg.FsDiv,
	})
	if err != nil {
		if errors.Is(err, dart.ErrNoData) {
			log.Warn("No financial statements")
		} else {
			log.WithError(err).Warn("Failed to fetch financial statements")
		}
		return false
	}
	if len(items) == 0 {
		log.Warn("No financial statements")
		return false
	}

	rec := financial.NewRatioRecord(ticker, year, financial.CalculateRatios(items))
	rec.ReceiptNo = items[0].ReceiptNo
	if err := s.ratios.Upsert(ctx, rec); err != nil {
		log.WithError(err).Error("Failed to upsert financials")
		return false
	}

	log.WithFields(map[string]interface{}{
		"operating_margin": rec.OperatingMargin,
		"debt_ratio":       rec.DebtRatio,
		"profitability":    rec.ProfitabilityLevel,
		"stability":        rec.StabilityLevel,
	}).Debug("Financials saved")

	return true
}
