package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ErrNoPendingTransition is returned when a group has no open hold for the
// confirmed phase. The hold may have expired or been replaced by a request
// for the other dispatch phase.
var ErrNoPendingTransition = errors.New("no pending transition for group")

// ConfirmDriverDetailsCommandHandler applies a held dispatch transition once
// the driver is known. A rejected confirmation keeps the hold so the operator
// can correct the input.
type ConfirmDriverDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
	holds      ports.HoldStore
	engine     services.StatusEngine
}

func NewConfirmDriverDetailsCommandHandler(
	uowFactory OrderUoWFactory,
	holds ports.HoldStore,
	engine services.StatusEngine,
) ConfirmDriverDetailsCommandHandler {
	return ConfirmDriverDetailsCommandHandler{
		uowFactory: uowFactory,
		holds:      holds,
		engine:     engine,
	}
}

func (h ConfirmDriverDetailsCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmDriverDetailsCommand,
) (order.Transition, error) {
	if err := cmd.Validate(); err != nil {
		return order.Transition{}, err
	}

	hold, err := h.holds.Get(ctx, cmd.OrderID(), cmd.Group())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return order.Transition{}, fmt.Errorf("%w: %w", ErrNoPendingTransition, err)
	}
	if err != nil {
		return order.Transition{}, err
	}
	if hold.Target() != cmd.Phase() {
		return order.Transition{}, fmt.Errorf("%w: %s is waiting for %s, not %s",
			ErrNoPendingTransition, cmd.Group(), hold.Target(), cmd.Phase())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.Transition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Transition{}, err
	}

	outcome, err := h.engine.ConfirmDriverDetails(o, hold, cmd.DriverName(), cmd.VehicleNumber())
	if err != nil {
		return order.Transition{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.Transition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Transition{}, err
	}

	// the driver is on record; a hold that survives a failed delete expires
	// with its TTL and fails the From check if confirmed again
	_ = h.holds.Delete(ctx, cmd.OrderID(), cmd.Group())

	return outcome, nil
}
