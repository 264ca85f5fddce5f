package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrDiscardPendingTransitionCommandIsNotConstructed = errors.New(
	"DiscardPendingTransitionCommand must be created via NewDiscardPendingTransitionCommand constructor",
)

// DiscardPendingTransitionCommand drops the hold of a group whose driver
// dialog was closed without confirming. The group keeps its status.
type DiscardPendingTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	group   order.GroupRef

	guard guard.ConstructorGuard
}

func NewDiscardPendingTransitionCommand(
	orderID kernel.UUID,
	group order.GroupRef,
) (DiscardPendingTransitionCommand, error) {
	if err := errors.Join(orderID.Validate(), group.Validate()); err != nil {
		return DiscardPendingTransitionCommand{}, err
	}

	return DiscardPendingTransitionCommand{
		orderID: orderID,
		group:   group,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DiscardPendingTransitionCommand) Validate() error {
	return c.guard.Validate(ErrDiscardPendingTransitionCommandIsNotConstructed)
}

func (c DiscardPendingTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DiscardPendingTransitionCommand) Group() order.GroupRef {
	return c.group
}
