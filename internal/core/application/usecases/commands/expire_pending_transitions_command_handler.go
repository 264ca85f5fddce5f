package commands

import (
	"context"
	"time"

	"logistics/internal/core/ports"
)

type ExpirePendingTransitionsCommandHandler struct {
	holds ports.HoldStore
	now   func() time.Time
}

func NewExpirePendingTransitionsCommandHandler(holds ports.HoldStore) ExpirePendingTransitionsCommandHandler {
	return ExpirePendingTransitionsCommandHandler{
		holds: holds,
		now:   time.Now,
	}
}

// Handle returns the number of holds removed.
func (h ExpirePendingTransitionsCommandHandler) Handle(
	ctx context.Context,
	cmd ExpirePendingTransitionsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.holds.DeleteExpired(ctx, h.now())
}
