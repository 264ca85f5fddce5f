package services

import (
	"fmt"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// StatusEngine is a domain service that decides how a requested status
// change is applied to one product group of an order.
//
// Business rules:
//   - The target must be allowed for the group (Hardware never goes InTransit)
//   - LPO requests must name a supplier referenced by the order
//   - Rejected is applied together with a non-empty note
//   - InTransit and OutForDelivery are applied only together with driver
//     details; without them the request is held as AwaitingDetails and the
//     group keeps its current status
//   - Any failure leaves the order untouched
//
// Example usage:
//
//	engine := services.NewStatusEngine()
//	outcome, err := engine.RequestTransition(o, order.TransitionRequest{
//	    Group:  order.MustGroupRef(order.LPO, "SUP-7"),
//	    Target: order.InTransit,
//	})
//	if err != nil {
//	    return err
//	}
//	if hold, ok := outcome.Pending(); ok {
//	    // store hold, ask the operator for the driver
//	}
type StatusEngine struct {
	now func() time.Time
}

// StatusEngineOption configures a StatusEngine.
type StatusEngineOption func(*StatusEngine)

// WithClock replaces time.Now as the source of record timestamps.
func WithClock(now func() time.Time) StatusEngineOption {
	return func(e *StatusEngine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewStatusEngine(opts ...StatusEngineOption) StatusEngine {
	e := StatusEngine{now: time.Now}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// DeriveLpoAggregate is the LPO group status for a supplier map.
// See order.DeriveLpoAggregate for the precedence rules.
func (e StatusEngine) DeriveLpoAggregate(suppliers map[string]order.Status) order.Status {
	return order.DeriveLpoAggregate(suppliers)
}

// RequestTransition validates req against o and either applies it or, for a
// dispatch phase requested without driver details, returns an
// AwaitingDetails outcome carrying the hold to store.
//
// Errors:
//   - order.ErrInvalidStatusForGroup: target not allowed for the group
//   - order.ErrUnknownSupplier: LPO supplier is not on the order
//   - order.ErrStatusConflict: req.Current is set and differs from the stored status
//   - order.ErrMissingRejectionNote: target is Rejected and the note is blank
//   - order.ErrMissingDriverDetails: driver details were partially supplied
func (e StatusEngine) RequestTransition(o *order.Order, req order.TransitionRequest) (order.Transition, error) {
	if err := o.Validate(); err != nil {
		return order.Transition{}, err
	}
	if err := req.Target.Validate(); err != nil {
		return order.Transition{}, err
	}
	if err := req.Group.Validate(); err != nil {
		return order.Transition{}, err
	}
	if err := req.Group.Type().ValidateStatus(req.Target); err != nil {
		return order.Transition{}, err
	}

	current, err := o.StatusOf(req.Group)
	if err != nil {
		return order.Transition{}, err
	}
	if err = checkExpected(req.Group, req.Current, current); err != nil {
		return order.Transition{}, err
	}

	now := e.now()

	switch {
	case req.Target.RequiresNote():
		if err = o.Reject(req.Group, req.Payload.Note, now); err != nil {
			return order.Transition{}, err
		}

	case req.Target.IsDispatchPhase() && !req.Payload.HasDriverDetails():
		hold, err := order.NewPendingTransition(o.ID(), req.Group, current, req.Target, now)
		if err != nil {
			return order.Transition{}, err
		}
		return order.AwaitingDetailsTransition(hold), nil

	case req.Target.IsDispatchPhase():
		details, err := order.NewDriverDetails(
			req.Group, req.Target, req.Payload.DriverName, req.Payload.VehicleNumber, now,
		)
		if err != nil {
			return order.Transition{}, err
		}
		if err = o.Dispatch(details); err != nil {
			return order.Transition{}, err
		}

	default:
		if err = o.ChangeStatus(req.Group, req.Target, now); err != nil {
			return order.Transition{}, err
		}
	}

	return order.AppliedTransition(req.Group, current, req.Target), nil
}

// ConfirmDriverDetails completes a held dispatch transition. Both fields are
// trimmed and must be non-empty; the group must still have the status it had
// when the hold was opened.
func (e StatusEngine) ConfirmDriverDetails(
	o *order.Order,
	hold order.PendingTransition,
	driverName string,
	vehicleNumber string,
) (order.Transition, error) {
	if err := o.Validate(); err != nil {
		return order.Transition{}, err
	}
	if err := hold.Validate(); err != nil {
		return order.Transition{}, err
	}
	if !hold.OrderID().IsEqual(o.ID()) {
		return order.Transition{}, errs.NewValueIsInvalidErrorWithCause(
			"hold",
			fmt.Errorf("hold belongs to order %s, not %s", hold.OrderID(), o.ID()),
		)
	}

	details, err := order.NewDriverDetails(hold.Group(), hold.Target(), driverName, vehicleNumber, e.now())
	if err != nil {
		return order.Transition{}, err
	}

	current, err := o.StatusOf(hold.Group())
	if err != nil {
		return order.Transition{}, err
	}
	if err = checkExpected(hold.Group(), hold.From(), current); err != nil {
		return order.Transition{}, err
	}

	if err = o.Dispatch(details); err != nil {
		return order.Transition{}, err
	}

	return order.AppliedTransition(hold.Group(), current, hold.Target()), nil
}

// checkExpected fails with ErrStatusConflict when expected is set and stale.
func checkExpected(ref order.GroupRef, expected, actual order.Status) error {
	if expected == order.Unknown || expected == actual {
		return nil
	}
	return fmt.Errorf("%w: %s is %s, expected %s", order.ErrStatusConflict, ref, actual, expected)
}
