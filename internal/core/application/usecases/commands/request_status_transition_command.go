package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrRequestStatusTransitionCommandIsNotConstructed = errors.New(
	"RequestStatusTransitionCommand must be created via NewRequestStatusTransitionCommand constructor",
)

// RequestStatusTransitionCommand asks for one product group of an order to
// move to a new status. Current is the status the operator saw; pass
// order.Unknown to skip the staleness check.
//
// Example:
//
//	cmd, err := NewRequestStatusTransitionCommand(orderID, order.MustGroupRef(order.Workshop, ""),
//	    order.Approved, order.Rejected, order.TransitionPayload{Note: "weld defects"})
type RequestStatusTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	group   order.GroupRef
	current order.Status
	target  order.Status
	payload order.TransitionPayload

	guard guard.ConstructorGuard
}

func NewRequestStatusTransitionCommand(
	orderID kernel.UUID,
	group order.GroupRef,
	current order.Status,
	target order.Status,
	payload order.TransitionPayload,
) (RequestStatusTransitionCommand, error) {
	cmd := RequestStatusTransitionCommand{
		payload: payload,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setGroup(group),
		cmd.setCurrent(current),
		cmd.setTarget(target),
	); err != nil {
		return RequestStatusTransitionCommand{}, err
	}

	return cmd, nil
}

func (c RequestStatusTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestStatusTransitionCommandIsNotConstructed)
}

func (c RequestStatusTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RequestStatusTransitionCommand) Group() order.GroupRef {
	return c.group
}

func (c RequestStatusTransitionCommand) Current() order.Status {
	return c.current
}

func (c RequestStatusTransitionCommand) Target() order.Status {
	return c.target
}

func (c RequestStatusTransitionCommand) Payload() order.TransitionPayload {
	return c.payload
}

// Request converts the command into the engine's input.
func (c RequestStatusTransitionCommand) Request() order.TransitionRequest {
	return order.TransitionRequest{
		Group:   c.group,
		Current: c.current,
		Target:  c.target,
		Payload: c.payload,
	}
}

func (c *RequestStatusTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestStatusTransitionCommand) setGroup(group order.GroupRef) error {
	if err := group.Validate(); err != nil {
		return err
	}

	c.group = group
	return nil
}

func (c *RequestStatusTransitionCommand) setCurrent(current order.Status) error {
	if current != order.Unknown {
		if err := current.Validate(); err != nil {
			return err
		}
	}

	c.current = current
	return nil
}

func (c *RequestStatusTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
