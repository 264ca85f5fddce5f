package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob publishes outbox messages in batches. Runs never overlap:
// a tick that fires while the previous batch is still publishing is skipped.
type OutboxRelayJob struct {
	handler  commands.RelayOutboxEventsCommandHandler
	cmd      commands.RelayOutboxEventsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxRelayJob(
	handler commands.RelayOutboxEventsCommandHandler,
	cmd commands.RelayOutboxEventsCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	logger = logger.With("component", "outbox_relay_job")

	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

func (j *OutboxRelayJob) run() {
	ctx := context.Background()

	published, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", published)
	}
}

// Stop waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
