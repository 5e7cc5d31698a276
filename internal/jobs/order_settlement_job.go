package jobs

import (
	"context"
	"log/slog"

	"parcelmate/internal/core/application/facade"

	"github.com/robfig/cron/v3"
)

// OrderSettlementJob sweeps orders stuck in Delivered and settles them:
// the escrow pays out, the flight capacity is released and the order
// closes. It backs up the settlement step of delivery confirmation, which
// can be lost to a crash or a concurrency conflict.
type OrderSettlementJob struct {
	engine *facade.Engine
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOrderSettlementJob creates the settlement sweep over the engine.
func NewOrderSettlementJob(engine *facade.Engine, logger *slog.Logger) *OrderSettlementJob {
	return &OrderSettlementJob{
		engine: engine,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "order_settlement_job"),
	}
}

// Start begins the sweep, running every ten seconds.
func (j *OrderSettlementJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		if err := j.engine.CompleteDeliveredOrders(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order settlement sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order settlement job started (running every 10 seconds)")
	return nil
}

// Stop stops the settlement sweep.
func (j *OrderSettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order settlement job stopped")
}
