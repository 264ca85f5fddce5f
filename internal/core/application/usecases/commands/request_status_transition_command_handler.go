package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// RequestStatusTransitionCommandHandler runs a transition through the status
// engine. Applied outcomes are persisted; AwaitingDetails outcomes only open
// a hold and leave the stored order untouched.
//
// Example:
//
//	outcome, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrMissingRejectionNote):
//	    // ask for a note
//	case err != nil:
//	    return err
//	case outcome.IsAwaitingDetails():
//	    // open the driver details dialog
//	}
type RequestStatusTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	holds      ports.HoldStore
	engine     services.StatusEngine
}

func NewRequestStatusTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	holds ports.HoldStore,
	engine services.StatusEngine,
) RequestStatusTransitionCommandHandler {
	return RequestStatusTransitionCommandHandler{
		uowFactory: uowFactory,
		holds:      holds,
		engine:     engine,
	}
}

func (h RequestStatusTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestStatusTransitionCommand,
) (order.Transition, error) {
	if err := cmd.Validate(); err != nil {
		return order.Transition{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	outcome, err := h.engine.RequestTransition(o, cmd.Request())
	if err != nil {
		return order.Transition{}, err
	}

	if hold, ok := outcome.Pending(); ok {
		if err = h.holds.Put(ctx, hold); err != nil {
			return order.Transition{}, err
		}
		return outcome, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.Transition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Transition{}, err
	}

	// an applied transition supersedes a dialog left open for the same group;
	// a hold that survives a failed delete is stale and fails the From check
	_ = h.holds.Delete(ctx, o.ID(), outcome.Group())

	return outcome, nil
}
