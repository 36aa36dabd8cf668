package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/mbtistock/pkg/config"
)

// fetchHistoryCmd pulls the last month of daily prices
var fetchHistoryCmd = &cobra.Command{
	Use:   "fetch-month-history",
	Short: "최근 한 달 일별 시세 수집 (공공데이터포털)",
	Long: `공공데이터포털 금융위원회_주식시세정보에서 모든 종목의 최근 시세를 받아
(ticker, trade_date) 기준으로 upsert 합니다.

필수 환경변수: DATABASE_URL, DATA_PORTAL_SERVICE_KEY

Example:
  go run ./cmd/mbtistock fetch-month-history`,
	Args: cobra.NoArgs,
	RunE: runFetchHistory,
}

func init() {
	rootCmd.AddCommand(fetchHistoryCmd)
}

func runFetchHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := bootstrap(ctx, (*config.Config).RequireDataPortal)
	if err != nil {
		return err
	}
	defer a.Close()

	sync := a.historySync()
	from, to := sync.Window(timeNow())
	PrintJobHeader("Fetch Month History",
		fmt.Sprintf("Period    : %s ~ %s", from.Format("2006-01-02"), to.Format("2006-01-02")),
		fmt.Sprintf("Delay     : %s", a.cfg.Sync.Delay),
	)

	summary, err := sync.Run(ctx)
	PrintSummary("Price history sync", summary)
	if err != nil {
		return fmt.Errorf("price history sync: %w", err)
	}
	return nil
}
