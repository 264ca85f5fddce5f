// Package ports defines the contracts between the order status workflow and
// its infrastructure: persistence, the session-scoped hold store and the
// event relay.
package ports

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// ErrDuplicateOrder is returned by Add when the order ID or number is taken.
var ErrDuplicateOrder = errors.New("order already exists")

// OrderRepository defines the persistence contract for order aggregates.
// Line items, statuses, rejection notes and driver details are stored and
// restored together with the order.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository,
	// otherwise ErrDuplicateOrder is returned.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Statuses and records are overwritten, never deleted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
