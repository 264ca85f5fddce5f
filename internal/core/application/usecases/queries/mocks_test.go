package queries_test

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHoldStore struct{ mock.Mock }

func (m *MockHoldStore) Put(ctx context.Context, hold order.PendingTransition) error {
	return m.Called(ctx, hold).Error(0)
}

func (m *MockHoldStore) Get(ctx context.Context, orderID kernel.UUID, group order.GroupRef) (order.PendingTransition, error) {
	args := m.Called(ctx, orderID, group)
	return args.Get(0).(order.PendingTransition), args.Error(1)
}

func (m *MockHoldStore) Delete(ctx context.Context, orderID kernel.UUID, group order.GroupRef) error {
	return m.Called(ctx, orderID, group).Error(0)
}

func (m *MockHoldStore) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.PendingTransition, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.PendingTransition), args.Error(1)
}

func (m *MockHoldStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

// mockAggregateTracker satisfies the repository's tracker in fixtures.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}
