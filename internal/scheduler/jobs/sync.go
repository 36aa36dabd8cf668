package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/mbtistock/internal/syncer"
	"github.com/wonny/mbtistock/pkg/logger"
)

// Runner is a sync loop (syncer.FinancialSync, syncer.HistorySync)
type Runner interface {
	Run(ctx context.Context) (syncer.Summary, error)
}

// Cron specs, evaluated in KST by the scheduler
const (
	PriceHistorySchedule  = "0 0 18 * * MON-FRI" // 장 마감 후 평일 18:00
	FinancialSyncSchedule = "0 0 3 * * MON"      // 매주 월요일 03:00
)

// SyncJob adapts a sync loop to scheduler.Job.
// Per-stock failures stay inside the summary; only a loop-level error fails the job.
type SyncJob struct {
	name     string
	schedule string
	runner   Runner
	logger   *logger.Logger

	onSuccess func(ctx context.Context) error
}

// NewPriceHistoryJob schedules the data portal price loop
// ⭐ SSOT: 시세 동기화 스케줄은 이 Job에서만
func NewPriceHistoryJob(runner Runner, log *logger.Logger) *SyncJob {
	return &SyncJob{name: "price_history", schedule: PriceHistorySchedule, runner: runner, logger: log}
}

// NewFinancialSyncJob schedules the OpenDART ratio loop
// ⭐ SSOT: 재무 동기화 스케줄은 이 Job에서만
func NewFinancialSyncJob(runner Runner, log *logger.Logger) *SyncJob {
	return &SyncJob{name: "financial_sync", schedule: FinancialSyncSchedule, runner: runner, logger: log}
}

// OnSuccess registers a follow-up (e.g. cache invalidation) run after a loop without error.
// Its failure is logged and does not fail the job.
func (j *SyncJob) OnSuccess(fn func(ctx context.Context) error) *SyncJob {
	j.onSuccess = fn
	return j
}

// Name returns the job name
func (j *SyncJob) Name() string { return j.name }

// Schedule returns the cron schedule
func (j *SyncJob) Schedule() string { return j.schedule }

// Run executes the loop once
func (j *SyncJob) Run(ctx context.Context) error {
	summary, err := j.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", j.name, err)
	}

	j.logger.WithFields(map[string]interface{}{
		"job":     j.name,
		"total":   summary.Total,
		"success": summary.Succeeded,
		"failed":  summary.Failed,
	}).Info("Scheduled sync finished")

	if j.onSuccess != nil {
		if err := j.onSuccess(ctx); err != nil {
			j.logger.WithError(err).WithField("job", j.name).Warn("Post-sync step failed")
		}
	}

	return nil
}
