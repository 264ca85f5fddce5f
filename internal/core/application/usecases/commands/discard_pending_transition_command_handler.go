package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// DiscardPendingTransitionCommandHandler removes a hold. Discarding a hold
// that already expired succeeds.
type DiscardPendingTransitionCommandHandler struct {
	holds ports.HoldStore
}

func NewDiscardPendingTransitionCommandHandler(holds ports.HoldStore) DiscardPendingTransitionCommandHandler {
	return DiscardPendingTransitionCommandHandler{holds: holds}
}

func (h DiscardPendingTransitionCommandHandler) Handle(ctx context.Context, cmd DiscardPendingTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.holds.Delete(ctx, cmd.OrderID(), cmd.Group())
}
