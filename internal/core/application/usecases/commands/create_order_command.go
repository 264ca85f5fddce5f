package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
	ErrCustomerIsRequired    = errors.New("customer is required")
	ErrLineItemsAreRequired  = errors.New("at least one line item is required")
)

// LineItemInput describes one product of a new order.
type LineItemInput struct {
	ID         kernel.UUID
	Product    string
	Group      order.GroupType
	SupplierID string
	Quantity   int
	Materials  []order.Material
}

// CreateOrderCommand represents a request to register a new order with every
// product group pending.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "ORD-1042", "Acme Builders", "Tower B",
//	    []LineItemInput{{ID: kernel.NewUUID(), Product: "Cement 50kg", Group: order.LPO, SupplierID: "SUP-7", Quantity: 40}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	number    string
	customer  string
	site      string
	lineItems []LineItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the header fields and that the order has
// line items. The items themselves are validated when the order is built.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	customer string,
	site string,
	lineItems []LineItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		site:  strings.TrimSpace(site),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNumber(number),
		cmd.setCustomer(customer),
		cmd.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Number() string {
	return c.number
}

func (c CreateOrderCommand) Customer() string {
	return c.customer
}

func (c CreateOrderCommand) Site() string {
	return c.site
}

func (c CreateOrderCommand) LineItems() []LineItemInput {
	out := make([]LineItemInput, len(c.lineItems))
	copy(out, c.lineItems)
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrOrderNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setLineItems(lineItems []LineItemInput) error {
	if len(lineItems) == 0 {
		return ErrLineItemsAreRequired
	}

	c.lineItems = append([]LineItemInput(nil), lineItems...)
	return nil
}
