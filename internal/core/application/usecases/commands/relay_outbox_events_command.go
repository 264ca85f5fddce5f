package commands

import (
	"errors"
	"fmt"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRelayOutboxEventsCommandIsNotConstructed = errors.New(
	"RelayOutboxEventsCommand must be created via NewRelayOutboxEventsCommand constructor",
)

const (
	maxRelayBatch    = 500
	maxRelayAttempts = 100
)

// RelayOutboxEventsCommand publishes one batch of stored status change
// events to the broker.
type RelayOutboxEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

func NewRelayOutboxEventsCommand(batchSize, maxAttempts int) (RelayOutboxEventsCommand, error) {
	var problems []error
	if batchSize < 1 || batchSize > maxRelayBatch {
		problems = append(problems, errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, maxRelayBatch))
	}
	if maxAttempts < 1 || maxAttempts > maxRelayAttempts {
		problems = append(problems, errs.NewValueIsOutOfRangeError("max_attempts", maxAttempts, 1, maxRelayAttempts))
	}
	if len(problems) > 0 {
		return RelayOutboxEventsCommand{}, fmt.Errorf("invalid relay settings: %w", errors.Join(problems...))
	}

	return RelayOutboxEventsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOutboxEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxEventsCommandIsNotConstructed)
}

func (c RelayOutboxEventsCommand) BatchSize() int {
	return c.batchSize
}

func (c RelayOutboxEventsCommand) MaxAttempts() int {
	return c.maxAttempts
}
