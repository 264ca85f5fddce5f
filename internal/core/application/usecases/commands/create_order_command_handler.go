package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/order"
)

// CreateOrderCommandHandler builds the order aggregate from the command and
// persists it with every group pending.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle validates every line item before a transaction is opened.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	inputs := cmd.LineItems()
	items := make([]*order.LineItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := order.NewLineItem(in.ID, in.Product, in.Group, in.SupplierID, in.Quantity, in.Materials)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Number(), cmd.Customer(), cmd.Site(), items, h.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
