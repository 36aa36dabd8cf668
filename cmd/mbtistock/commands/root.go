package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mbtistock",
	Short: "MBTI 투자 성향 × 종목 데이터 백엔드",
	Long: `mbtistock Unified CLI

MBTI 성향별 투자 테마 앱의 데이터 동기화와 API 서버.

Usage:
  go run ./cmd/mbtistock [command]

Examples:
  go run ./cmd/mbtistock migrate --seed
  go run ./cmd/mbtistock fetch-month-history
  go run ./cmd/mbtistock sync-financials
  go run ./cmd/mbtistock api
  go run ./cmd/mbtistock scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
