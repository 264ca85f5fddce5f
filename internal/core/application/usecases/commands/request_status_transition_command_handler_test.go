package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestStatusTransitionCommandHandler_Handle_Applied(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	ref := order.MustGroupRef(order.Custom, "")
	cmd, err := commands.NewRequestStatusTransitionCommand(o.ID(), ref, order.Pending, order.Approved, order.TransitionPayload{})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	holds := new(MockHoldStore)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		holds.On("Delete", ctx, o.ID(), ref).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRequestStatusTransitionCommandHandler(factory, holds, services.NewStatusEngine())
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, outcome.IsApplied())
	assert.Equal(t, order.Approved, o.GroupStatus(order.Custom))
	require.Len(t, o.DomainEvents(), 1)
	repo.AssertExpectations(t)
	holds.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRequestStatusTransitionCommandHandler_Handle_CommitFailureKeepsHold(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	ref := order.MustGroupRef(order.Custom, "")
	cmd, err := commands.NewRequestStatusTransitionCommand(o.ID(), ref, order.Pending, order.Approved, order.TransitionPayload{})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	holds := new(MockHoldStore)
	commitErr := errors.New("serialization failure")

	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(commitErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRequestStatusTransitionCommandHandler(factory, holds, services.NewStatusEngine())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commitErr)
	holds.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRequestStatusTransitionCommandHandler_Handle_HoldCleanupFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	ref := order.MustGroupRef(order.Custom, "")
	cmd, err := commands.NewRequestStatusTransitionCommand(o.ID(), ref, order.Pending, order.Approved, order.TransitionPayload{})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	holds := new(MockHoldStore)

	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	holds.On("Delete", ctx, o.ID(), ref).Return(errors.New("redis: connection refused")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRequestStatusTransitionCommandHandler(factory, holds, services.NewStatusEngine())
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, outcome.IsApplied())
	holds.AssertExpectations(t)
}

func TestRequestStatusTransitionCommandHandler_Handle_AwaitingDetails(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	ref := order.MustGroupRef(order.LPO, "S1")
	cmd, err := commands.NewRequestStatusTransitionCommand(o.ID(), ref, order.Unknown, order.InTransit, order.TransitionPayload{})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	holds := new(MockHoldStore)

	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	holds.On("Put", ctx, mock.MatchedBy(func(h order.PendingTransition) bool {
		return h.OrderID().IsEqual(o.ID()) && h.Group() == ref && h.Target() == order.InTransit && h.From() == order.Pending
	})).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRequestStatusTransitionCommandHandler(factory, holds, services.NewStatusEngine())
	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, outcome.IsAwaitingDetails())
	assert.Equal(t, order.Pending, o.SupplierStatuses()["S1"])
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	holds.AssertExpectations(t)
}

func TestRequestStatusTransitionCommandHandler_Handle_DomainError(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	cmd, err := commands.NewRequestStatusTransitionCommand(o.ID(), order.MustGroupRef(order.Hardware, ""),
		order.Unknown, order.InTransit, order.TransitionPayload{})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	holds := new(MockHoldStore)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRequestStatusTransitionCommandHandler(factory, holds, services.NewStatusEngine())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidStatusForGroup)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	holds.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRequestStatusTransitionCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	cmd, err := commands.NewRequestStatusTransitionCommand(o.ID(), order.MustGroupRef(order.Custom, ""),
		order.Unknown, order.Approved, order.TransitionPayload{})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("order", o.ID().String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRequestStatusTransitionCommandHandler(factory, new(MockHoldStore), services.NewStatusEngine())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRequestStatusTransitionCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	cmd, err := commands.NewRequestStatusTransitionCommand(o.ID(), order.MustGroupRef(order.Custom, ""),
		order.Unknown, order.Approved, order.TransitionPayload{})
	require.NoError(t, err)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	handler := commands.NewRequestStatusTransitionCommandHandler(factory, new(MockHoldStore), services.NewStatusEngine())
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestRequestStatusTransitionCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewRequestStatusTransitionCommandHandler(factory, new(MockHoldStore), services.NewStatusEngine())

	_, err := handler.Handle(t.Context(), commands.RequestStatusTransitionCommand{})

	require.ErrorIs(t, err, commands.ErrRequestStatusTransitionCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
