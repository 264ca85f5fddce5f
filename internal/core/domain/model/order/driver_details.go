package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrDriverDetailsIsNotConstructed = errors.New("DriverDetails must be created via NewDriverDetails")

// DriverDetails identifies who moved a group through a dispatch phase
// (InTransit or OutForDelivery).
type DriverDetails struct { //nolint:recvcheck // value object
	group         GroupRef
	phase         Status
	driverName    string
	vehicleNumber string
	recordedAt    time.Time

	guard guard.ConstructorGuard
}

// NewDriverDetails trims both fields. A blank field yields ErrMissingDriverDetails
// joined with one errs.ValueIsRequiredError per missing field.
func NewDriverDetails(
	group GroupRef,
	phase Status,
	driverName string,
	vehicleNumber string,
	recordedAt time.Time,
) (DriverDetails, error) {
	if err := group.Validate(); err != nil {
		return DriverDetails{}, err
	}
	if !phase.IsDispatchPhase() {
		return DriverDetails{}, errs.NewValueIsInvalidErrorWithCause(
			"phase",
			fmt.Errorf("%s is not a dispatch phase", phase),
		)
	}

	driverName = strings.TrimSpace(driverName)
	vehicleNumber = strings.TrimSpace(vehicleNumber)

	var missing []error
	if driverName == "" {
		missing = append(missing, errs.NewValueIsRequiredError("driver_name"))
	}
	if vehicleNumber == "" {
		missing = append(missing, errs.NewValueIsRequiredError("vehicle_number"))
	}
	if len(missing) > 0 {
		return DriverDetails{}, fmt.Errorf("%w: %w", ErrMissingDriverDetails, errors.Join(missing...))
	}

	return DriverDetails{
		group:         group,
		phase:         phase,
		driverName:    driverName,
		vehicleNumber: vehicleNumber,
		recordedAt:    recordedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (d DriverDetails) Validate() error {
	return d.guard.Validate(ErrDriverDetailsIsNotConstructed)
}

func (d DriverDetails) Group() GroupRef {
	return d.group
}

func (d DriverDetails) Phase() Status {
	return d.phase
}

func (d DriverDetails) DriverName() string {
	return d.driverName
}

func (d DriverDetails) VehicleNumber() string {
	return d.vehicleNumber
}

func (d DriverDetails) RecordedAt() time.Time {
	return d.recordedAt
}

// driverKey is how an order indexes driver details.
type driverKey struct {
	group GroupRef
	phase Status
}
