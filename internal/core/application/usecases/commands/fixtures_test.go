package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 7, 8, 14, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	item := func(product string, g order.GroupType, supplier string) *order.LineItem {
		li, err := order.NewLineItem(kernel.NewUUID(), product, g, supplier, 5, nil)
		require.NoError(t, err)
		return li
	}

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-3100", "Skyline Homes", "Plot 12", []*order.LineItem{
		item("Hinges", order.Hardware, ""),
		item("Door frames", order.Workshop, ""),
		item("Cement", order.LPO, "S1"),
		item("Facade panels", order.Custom, ""),
	}, fixedNow)
	require.NoError(t, err)
	return o
}

func newOrderUoW(repo *MockOrderRepository) (*MockOrderUoW, *MockOrderUoWFactory) {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}
