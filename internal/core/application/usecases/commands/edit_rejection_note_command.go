package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrEditRejectionNoteCommandIsNotConstructed = errors.New(
	"EditRejectionNoteCommand must be created via NewEditRejectionNoteCommand constructor",
)

// EditRejectionNoteCommand replaces the note of a rejected group. The note is
// re-validated by the order so a blank edit fails with
// order.ErrMissingRejectionNote.
type EditRejectionNoteCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	group   order.GroupRef
	note    string

	guard guard.ConstructorGuard
}

func NewEditRejectionNoteCommand(
	orderID kernel.UUID,
	group order.GroupRef,
	note string,
) (EditRejectionNoteCommand, error) {
	if err := errors.Join(orderID.Validate(), group.Validate()); err != nil {
		return EditRejectionNoteCommand{}, err
	}

	return EditRejectionNoteCommand{
		orderID: orderID,
		group:   group,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EditRejectionNoteCommand) Validate() error {
	return c.guard.Validate(ErrEditRejectionNoteCommandIsNotConstructed)
}

func (c EditRejectionNoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EditRejectionNoteCommand) Group() order.GroupRef {
	return c.group
}

func (c EditRejectionNoteCommand) Note() string {
	return c.note
}
