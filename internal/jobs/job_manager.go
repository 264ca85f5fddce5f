package jobs

import (
	"fmt"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// Schedules holds the cron expressions of every job, with seconds.
type Schedules struct {
	HoldExpiry  string
	OutboxRelay string
}

var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate parses every schedule.
func (s Schedules) Validate() error {
	if _, err := scheduleParser.Parse(s.HoldExpiry); err != nil {
		return fmt.Errorf("invalid hold expiry schedule %q: %w", s.HoldExpiry, err)
	}
	if _, err := scheduleParser.Parse(s.OutboxRelay); err != nil {
		return fmt.Errorf("invalid outbox relay schedule %q: %w", s.OutboxRelay, err)
	}
	return nil
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	holdExpiryJob  *HoldExpiryJob
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
// Schedules are checked here so a bad expression fails at start-up.
func NewJobManager(
	schedules Schedules,
	expireHandler commands.ExpirePendingTransitionsCommandHandler,
	relayHandler commands.RelayOutboxEventsCommandHandler,
	relayCmd commands.RelayOutboxEventsCommand,
	logger *slog.Logger,
) (*JobManager, error) {
	if err := schedules.Validate(); err != nil {
		return nil, err
	}

	return &JobManager{
		holdExpiryJob:  NewHoldExpiryJob(expireHandler, schedules.HoldExpiry, logger),
		outboxRelayJob: NewOutboxRelayJob(relayHandler, relayCmd, schedules.OutboxRelay, logger),
	}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.holdExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start hold expiry job: %w", err)
	}

	if err := jm.outboxRelayJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.holdExpiryJob.Stop()
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
	jm.holdExpiryJob.Stop()
}
