package jobs

import (
	"fmt"
	"log/slog"

	"parcelmate/internal/core/application/facade"
)

// JobManager coordinates the engine's scheduled jobs behind a unified
// start/stop interface.
type JobManager struct {
	orderSettlementJob *OrderSettlementJob
}

// NewJobManager creates a job manager wired to the engine.
func NewJobManager(engine *facade.Engine, logger *slog.Logger) *JobManager {
	return &JobManager{
		orderSettlementJob: NewOrderSettlementJob(engine, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderSettlementJob.Start(); err != nil {
		return fmt.Errorf("failed to start order settlement job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderSettlementJob.Stop()
}
