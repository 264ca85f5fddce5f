package order

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// TransitionPayload is the optional data accompanying a status change request.
type TransitionPayload struct {
	Note          string
	DriverName    string
	VehicleNumber string
}

// HasDriverDetails reports whether the caller supplied any driver field.
func (p TransitionPayload) HasDriverDetails() bool {
	return p.DriverName != "" || p.VehicleNumber != ""
}

// TransitionRequest asks for one group of an order to move to Target.
// Current is the status the operator saw; Unknown skips the staleness check.
type TransitionRequest struct {
	Group   GroupRef
	Current Status
	Target  Status
	Payload TransitionPayload
}

// TransitionKind tags the outcome of a transition request.
type TransitionKind int

const (
	// TransitionApplied means the status was written to the order.
	TransitionApplied TransitionKind = iota + 1
	// TransitionAwaitingDetails means the request is held until driver details are confirmed.
	TransitionAwaitingDetails
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionApplied:
		return "applied"
	case TransitionAwaitingDetails:
		return "awaiting_details"
	default:
		return "unknown"
	}
}

// Transition is the tagged outcome Applied(status) | AwaitingDetails(target, phase).
type Transition struct {
	kind    TransitionKind
	group   GroupRef
	from    Status
	status  Status
	pending PendingTransition
}

// AppliedTransition builds the Applied(status) outcome.
func AppliedTransition(group GroupRef, from, status Status) Transition {
	return Transition{kind: TransitionApplied, group: group, from: from, status: status}
}

// AwaitingDetailsTransition builds the AwaitingDetails outcome around the hold to store.
func AwaitingDetailsTransition(pending PendingTransition) Transition {
	return Transition{
		kind:    TransitionAwaitingDetails,
		group:   pending.group,
		from:    pending.from,
		status:  pending.from,
		pending: pending,
	}
}

func (t Transition) Kind() TransitionKind {
	return t.kind
}

func (t Transition) IsApplied() bool {
	return t.kind == TransitionApplied
}

func (t Transition) IsAwaitingDetails() bool {
	return t.kind == TransitionAwaitingDetails
}

func (t Transition) Group() GroupRef {
	return t.group
}

// From is the status before the request.
func (t Transition) From() Status {
	return t.from
}

// Status is the group's status after the request. For AwaitingDetails it is
// unchanged and equal to From.
func (t Transition) Status() Status {
	return t.status
}

// Pending returns the hold of an AwaitingDetails outcome.
func (t Transition) Pending() (PendingTransition, bool) {
	return t.pending, t.kind == TransitionAwaitingDetails
}

var ErrPendingTransitionIsNotConstructed = errors.New(
	"PendingTransition must be created via NewPendingTransition",
)

// PendingTransition is a dispatch request waiting for driver details. It
// lives only as long as the operator's capture dialog; if it is never
// confirmed the group keeps its previous status.
type PendingTransition struct { //nolint:recvcheck // value object
	orderID     kernel.UUID
	group       GroupRef
	from        Status
	target      Status
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewPendingTransition only accepts dispatch-phase targets.
func NewPendingTransition(
	orderID kernel.UUID,
	group GroupRef,
	from Status,
	target Status,
	requestedAt time.Time,
) (PendingTransition, error) {
	if err := errors.Join(orderID.Validate(), group.Validate(), from.Validate()); err != nil {
		return PendingTransition{}, err
	}
	if !target.IsDispatchPhase() {
		return PendingTransition{}, errs.NewValueIsInvalidErrorWithCause(
			"target",
			fmt.Errorf("%s does not wait for driver details", target),
		)
	}

	return PendingTransition{
		orderID:     orderID,
		group:       group,
		from:        from,
		target:      target,
		requestedAt: requestedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (p PendingTransition) Validate() error {
	return p.guard.Validate(ErrPendingTransitionIsNotConstructed)
}

func (p PendingTransition) OrderID() kernel.UUID {
	return p.orderID
}

func (p PendingTransition) Group() GroupRef {
	return p.group
}

// From is the status the group had when the hold was opened.
func (p PendingTransition) From() Status {
	return p.from
}

// Target is the held status, which is also the dispatch phase.
func (p PendingTransition) Target() Status {
	return p.target
}

func (p PendingTransition) RequestedAt() time.Time {
	return p.requestedAt
}

// IsExpired reports whether the hold is older than ttl at now.
func (p PendingTransition) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.requestedAt) >= ttl
}
