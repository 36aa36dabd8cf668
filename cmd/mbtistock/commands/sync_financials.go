package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/mbtistock/pkg/config"
	"github.com/wonny/mbtistock/pkg/kst"
)

// syncFinancialsCmd computes ratio records from OpenDART statements
var syncFinancialsCmd = &cobra.Command{
	Use:   "sync-financials",
	Short: "재무제표 → 재무비율 동기화 (OpenDART)",
	Long: `추적 종목마다 OpenDART 단일회사 전체 재무제표(사업보고서, 연결)를 받아
재무비율과 수익성/안정성 등급을 계산해 (ticker, fiscal_year) 기준으로 upsert 합니다.
대상 연도는 올해 - SYNC_FISCAL_YEAR_LAG (기본 2) 입니다.

필수 환경변수: DATABASE_URL, DART_API_KEY

Example:
  go run ./cmd/mbtistock sync-financials`,
	Args: cobra.NoArgs,
	RunE: runSyncFinancials,
}

func init() {
	rootCmd.AddCommand(syncFinancialsCmd)
}

// timeNow is the command clock
var timeNow = func() time.Time { return kst.Now() }

func runSyncFinancials(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := bootstrap(ctx, (*config.Config).RequireDART)
	if err != nil {
		return err
	}
	defer a.Close()

	invalidate, err := a.financialCacheHook(ctx)
	if err != nil {
		return err
	}

	sync := a.financialSync()
	PrintJobHeader("Sync Financials",
		fmt.Sprintf("Fiscal Year : %d", sync.FiscalYear(timeNow())),
		fmt.Sprintf("Report      : %s / %s", a.cfg.DART.ReportCode, a.cfg.DART.FsDiv),
		fmt.Sprintf("Delay       : %s", a.cfg.Sync.Delay),
	)

	summary, err := sync.Run(ctx)
	PrintSummary("Financial sync", summary)
	if err != nil {
		return fmt.Errorf("financial sync: %w", err)
	}

	if invalidate != nil {
		if err := invalidate(ctx); err != nil {
			a.log.WithError(err).Warn("Failed to invalidate cached views")
		}
	}
	return nil
}
