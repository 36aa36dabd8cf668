package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/mbtistock/internal/store"
)

var migrateSeed bool

// migrateCmd applies the embedded schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "DB 스키마 적용",
	Long: `stocks / stock_prices / financials 테이블을 생성합니다 (반복 실행 안전).
--seed 를 주면 기본 추적 종목을 넣습니다.

Example:
  go run ./cmd/mbtistock migrate --seed`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "기본 추적 종목 입력")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := store.Migrate(ctx, a.db.Pool); err != nil {
		return err
	}
	a.log.Info("Schema applied")

	if migrateSeed {
		if err := store.Seed(ctx, a.db.Pool); err != nil {
			return err
		}
		a.log.Info("Seed applied")
	}

	fmt.Println("✅ migrate done")
	return nil
}
