package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// HoldStore keeps dispatch transitions that wait for driver details. Holds
// live outside the order's persistent state: at most one per (order, group),
// a newer hold replaces an older one, and a hold older than the store's TTL
// is gone.
type HoldStore interface {
	// Put stores hold, replacing any hold for the same order and group.
	Put(ctx context.Context, hold order.PendingTransition) error

	// Get returns the hold for the group. Returns errs.ObjectNotFoundError
	// when there is none or it has expired.
	Get(ctx context.Context, orderID kernel.UUID, group order.GroupRef) (order.PendingTransition, error)

	// Delete removes the hold for the group. Deleting a missing hold is not an error.
	Delete(ctx context.Context, orderID kernel.UUID, group order.GroupRef) error

	// ListByOrder returns every live hold of an order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.PendingTransition, error)

	// DeleteExpired drops holds that expired at now and reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
