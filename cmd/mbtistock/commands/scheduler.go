package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/mbtistock/internal/scheduler"
	"github.com/wonny/mbtistock/internal/scheduler/jobs"
	"github.com/wonny/mbtistock/pkg/config"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `동기화 작업을 cron 으로 실행합니다 (KST 기준, 실패 시 재시도 없음).

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업과 다음 실행 시각
  run     - 특정 작업 즉시 실행

Jobs:
  price_history   평일 18:00   fetch-month-history
  financial_sync  월요일 03:00 sync-financials`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Args:  cobra.NoArgs,
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		Args:  cobra.NoArgs,
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler needs both external API keys since it registers both jobs
func initScheduler(ctx context.Context) (*scheduler.Scheduler, *app, error) {
	a, err := bootstrap(ctx, (*config.Config).RequireDART, (*config.Config).RequireDataPortal)
	if err != nil {
		return nil, nil, err
	}

	invalidate, err := a.financialCacheHook(ctx)
	if err != nil {
		a.Close()
		return nil, nil, err
	}

	sched := scheduler.New(a.log)
	for _, job := range []scheduler.Job{
		jobs.NewPriceHistoryJob(a.historySync(), a.log),
		jobs.NewFinancialSyncJob(a.financialSync(), a.log).OnSuccess(invalidate),
	} {
		if err := sched.AddJob(job); err != nil {
			a.Close()
			return nil, nil, err
		}
	}
	return sched, a, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	sched, a, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.Close()

	sched.Start()
	PrintJobHeader("Scheduler started", sched.GetAllJobs()...)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, a, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.Close()

	stats := sched.GetJobStats()
	fmt.Println("Registered jobs:")
	for _, name := range sched.GetAllJobs() {
		st := stats[name]
		next, err := scheduler.NextRun(st.Schedule, timeNow())
		if err != nil {
			return err
		}
		fmt.Printf("  - %-16s %-20s next: %s\n", name, st.Schedule, next.Format("2006-01-02 15:04 MST"))
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sched, a, err := initScheduler(ctx)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.Close()

	result, err := sched.RunNow(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s finished in %.2fs (success=%t)\n", result.JobName, result.Duration.Seconds(), result.Success)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}
	return nil
}
