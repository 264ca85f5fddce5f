package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// RelayOutboxEventsCommandHandler reads unpublished outbox messages in one
// transaction, publishes each and records the result. A failed publish is
// counted as an attempt and retried on a later run.
type RelayOutboxEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewRelayOutboxEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) RelayOutboxEventsCommandHandler {
	return RelayOutboxEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns how many messages were published.
func (h RelayOutboxEventsCommandHandler) Handle(ctx context.Context, cmd RelayOutboxEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()

	messages, err := outbox.FetchUnpublished(ctx, cmd.BatchSize(), cmd.MaxAttempts())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, msg := range messages {
		if pubErr := h.publisher.PublishStatusChanged(ctx, msg.Event); pubErr != nil {
			if err = outbox.MarkFailed(ctx, msg.ID, pubErr); err != nil {
				return 0, err
			}
			continue
		}

		if err = outbox.MarkPublished(ctx, msg.ID); err != nil {
			return 0, err
		}
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, nil
}
