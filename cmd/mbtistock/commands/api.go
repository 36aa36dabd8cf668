package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/mbtistock/internal/api"
	"github.com/wonny/mbtistock/internal/api/handlers"
	"github.com/wonny/mbtistock/internal/external/naver"
	"github.com/wonny/mbtistock/internal/mbti"
	"github.com/wonny/mbtistock/internal/store"
	"github.com/wonny/mbtistock/pkg/httputil"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다 (Naver EUC-KR 프록시 포함).

Endpoints:
  GET /health
  GET /api/mbti
  GET /api/mbti/{type}/portfolio?size=5
  GET /api/mbti/{type}/insight
  GET /api/stocks
  GET /api/stocks/{ticker}/history?days=30
  GET /api/stocks/{ticker}/financials
  GET /api/naver/quote/{ticker}

Example:
  go run ./cmd/mbtistock api
  go run ./cmd/mbtistock api --port 8089`,
	Args: cobra.NoArgs,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	c, err := a.openCache(ctx)
	if err != nil {
		return err
	}

	stocks := store.NewStockRepository(a.db.Pool)
	prices := store.NewPriceRepository(a.db.Pool)
	financials := store.NewFinancialRepository(a.db.Pool)

	naverClient := naver.NewClient(httputil.New(a.log).WithTimeout(10*time.Second), a.cfg.Naver.BaseURL, a.log)

	router := api.NewRouter(api.Handlers{
		Stock:  handlers.NewStockHandler(stocks, prices, financials, c, a.log),
		MBTI:   handlers.NewMBTIHandler(stocks, financials, c, mbti.NewInsightRotator(nil), a.log),
		Naver:  handlers.NewNaverHandler(naverClient, a.log),
		Health: a.db,
	}, a.cfg.AllowedOrigin, a.log)

	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
