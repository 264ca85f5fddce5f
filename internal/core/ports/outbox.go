package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OutboxMessage is a status change event waiting to be relayed.
type OutboxMessage struct {
	ID       kernel.UUID
	Event    order.StatusChanged
	Attempts int
}

// OutboxRepository stores domain events in the same transaction as the
// aggregate that raised them, for the relay job to publish later.
type OutboxRepository interface {
	// Add stores events as unpublished messages.
	Add(ctx context.Context, events ...order.StatusChanged) error

	// FetchUnpublished returns up to limit unpublished messages, oldest first,
	// skipping those that already used maxAttempts.
	FetchUnpublished(ctx context.Context, limit, maxAttempts int) ([]OutboxMessage, error)

	// MarkPublished flags a message as delivered.
	MarkPublished(ctx context.Context, id kernel.UUID) error

	// MarkFailed records a failed delivery attempt.
	MarkFailed(ctx context.Context, id kernel.UUID, cause error) error
}

// EventPublisher delivers status change events to the message broker.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChanged) error
}
