package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// HoldExpiryJob removes expired pending transitions from the hold store.
type HoldExpiryJob struct {
	handler  commands.ExpirePendingTransitionsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewHoldExpiryJob(
	handler commands.ExpirePendingTransitionsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *HoldExpiryJob {
	return &HoldExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "hold_expiry_job"),
	}
}

func (j *HoldExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Hold expiry job started", "schedule", j.schedule)
	return nil
}

func (j *HoldExpiryJob) run() {
	ctx := context.Background()

	removed, err := j.handler.Handle(ctx, commands.NewExpirePendingTransitionsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Hold expiry job failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired pending transitions removed", "count", removed)
	}
}

// Stop waits for a running sweep to finish.
func (j *HoldExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Hold expiry job stopped")
}
