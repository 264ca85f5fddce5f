package commands

import (
	"context"
	"time"
)

type EditRejectionNoteCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewEditRejectionNoteCommandHandler(uowFactory OrderUoWFactory) EditRejectionNoteCommandHandler {
	return EditRejectionNoteCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h EditRejectionNoteCommandHandler) Handle(ctx context.Context, cmd EditRejectionNoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.EditRejectionNote(cmd.Group(), cmd.Note(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
