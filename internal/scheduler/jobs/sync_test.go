package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/mbtistock/internal/syncer"
	"github.com/wonny/mbtistock/pkg/logger"
)

type stubRunner struct {
	summary syncer.Summary
	err     error
}

func (r stubRunner) Run(context.Context) (syncer.Summary, error) { return r.summary, r.err }

func TestSyncJob(t *testing.T) {
	job := NewFinancialSyncJob(stubRunner{summary: syncer.Summary{Total: 3, Succeeded: 1, Failed: 2}}, logger.Nop())

	assert.Equal(t, "financial_sync", job.Name())
	assert.Equal(t, FinancialSyncSchedule, job.Schedule())
	// entity failures do not fail the job
	assert.NoError(t, job.Run(context.Background()))
}

func TestSyncJob_LoopError(t *testing.T) {
	job := NewPriceHistoryJob(stubRunner{err: errors.New("db down")}, logger.Nop())

	assert.Equal(t, "price_history", job.Name())
	err := job.Run(context.Background())
	assert.ErrorContains(t, err, "price_history: db down")
}

func TestSyncJob_OnSuccess(t *testing.T) {
	var calls int
	hook := func(context.Context) error { calls++; return errors.New("redis down") }

	job := NewFinancialSyncJob(stubRunner{summary: syncer.Summary{Total: 1, Succeeded: 1}}, logger.Nop()).OnSuccess(hook)
	// a failing follow-up is logged, not returned
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, calls)

	failing := NewFinancialSyncJob(stubRunner{err: errors.New("db down")}, logger.Nop()).OnSuccess(hook)
	assert.Error(t, failing.Run(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestSyncJob_NilOnSuccess(t *testing.T) {
	job := NewFinancialSyncJob(stubRunner{}, logger.Nop()).OnSuccess(nil)
	assert.NoError(t, job.Run(context.Background()))
}
