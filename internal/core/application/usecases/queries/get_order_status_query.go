package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery asks for the status overview of one order.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	overview, err := handler.Handle(ctx, query)
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}
	return GetOrderStatusQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderStatusQueryResponse is the order overview shown on the order page.
type GetOrderStatusQueryResponse struct {
	ID             kernel.UUID
	Number         string
	Customer       string
	Site           string
	CreatedAt      time.Time
	Groups         []GroupView
	MaterialTotals []order.MaterialTotal
}

// GroupView is one product group. For LPO Status is the aggregate of the
// supplier slots; every other group has a single slot without supplier.
type GroupView struct {
	Type      order.GroupType
	Label     string
	Status    StatusView
	Slots     []SlotView
	LineItems []LineItemView
}

// SlotView is one status slot of a group, i.e. one supplier for LPO.
type SlotView struct {
	SupplierID      string
	Status          StatusView
	Rejection       *RejectionView
	Drivers         []DriverView
	AwaitingDetails *PendingView
}

type LineItemView struct {
	ID         kernel.UUID
	Product    string
	SupplierID string
	Quantity   int
	Materials  []order.Material
}
