package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRelayOutboxEventsCommand(t *testing.T) {
	cmd, err := commands.NewRelayOutboxEventsCommand(50, 5)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())
	assert.Equal(t, 5, cmd.MaxAttempts())

	_, err = commands.NewRelayOutboxEventsCommand(0, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "batch_size")
	assert.Contains(t, err.Error(), "max_attempts")
}

func TestRelayOutboxEventsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxEventsCommand(10, 3)
	require.NoError(t, err)

	ok := ports.OutboxMessage{ID: kernel.NewUUID(), Event: order.StatusChanged{
		OrderID: kernel.NewUUID(), Group: order.MustGroupRef(order.Custom, ""), From: order.Pending, To: order.Approved,
	}}
	broken := ports.OutboxMessage{ID: kernel.NewUUID(), Attempts: 1, Event: order.StatusChanged{
		OrderID: kernel.NewUUID(), Group: order.MustGroupRef(order.Workshop, ""), From: order.Pending, To: order.Delivered,
	}}
	brokerDown := errors.New("kafka: client has run out of available brokers")

	outbox := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	publisher := new(MockEventPublisher)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	outbox.On("FetchUnpublished", ctx, 10, 3).Return([]ports.OutboxMessage{ok, broken}, nil).Once()
	publisher.On("PublishStatusChanged", ctx, ok.Event).Return(nil).Once()
	outbox.On("MarkPublished", ctx, ok.ID).Return(nil).Once()
	publisher.On("PublishStatusChanged", ctx, broken.Event).Return(brokerDown).Once()
	outbox.On("MarkFailed", ctx, broken.ID, brokerDown).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRelayOutboxEventsCommandHandler(factory, publisher)
	published, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, published)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxEventsCommandHandler_Handle_FetchError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxEventsCommand(10, 3)
	require.NoError(t, err)

	outbox := new(MockOutboxRepository)
	uow := new(MockOutboxUoW)
	factory := new(MockOutboxUoWFactory)
	publisher := new(MockEventPublisher)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	outbox.On("FetchUnpublished", ctx, 10, 3).Return(nil, errors.New("relation does not exist")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRelayOutboxEventsCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "relation does not exist")
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
