package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrConfirmDriverDetailsCommandIsNotConstructed = errors.New(
	"ConfirmDriverDetailsCommand must be created via NewConfirmDriverDetailsCommand constructor",
)

// ConfirmDriverDetailsCommand completes the held dispatch transition to phase
// for one group. Driver name and vehicle number are checked by the status engine so
// that blank input surfaces as order.ErrMissingDriverDetails.
type ConfirmDriverDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	group         order.GroupRef
	phase         order.Status
	driverName    string
	vehicleNumber string

	guard guard.ConstructorGuard
}

func NewConfirmDriverDetailsCommand(
	orderID kernel.UUID,
	group order.GroupRef,
	phase order.Status,
	driverName string,
	vehicleNumber string,
) (ConfirmDriverDetailsCommand, error) {
	if err := errors.Join(orderID.Validate(), group.Validate(), validatePhase(phase)); err != nil {
		return ConfirmDriverDetailsCommand{}, err
	}

	return ConfirmDriverDetailsCommand{
		orderID:       orderID,
		group:         group,
		phase:         phase,
		driverName:    driverName,
		vehicleNumber: vehicleNumber,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDriverDetailsCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDriverDetailsCommandIsNotConstructed)
}

func (c ConfirmDriverDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmDriverDetailsCommand) Group() order.GroupRef {
	return c.group
}

// Phase is the dispatch status the driver details were entered for.
func (c ConfirmDriverDetailsCommand) Phase() order.Status {
	return c.phase
}

func (c ConfirmDriverDetailsCommand) DriverName() string {
	return c.driverName
}

func (c ConfirmDriverDetailsCommand) VehicleNumber() string {
	return c.vehicleNumber
}

func validatePhase(phase order.Status) error {
	if !phase.IsDispatchPhase() {
		return errs.NewValueIsInvalidErrorWithCause("phase", fmt.Errorf("%s does not take driver details", phase))
	}
	return nil
}
