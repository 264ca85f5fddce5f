package order

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the fulfilment state of one product group (or one LPO supplier).
//
//	Pending ──> Approved ──> InTransit ──> OutForDelivery ──> Delivered
//	   │                        (driver details required)
//	   ├──> Rejected (note required)
//	   └──> Cancelled
//
// Transitions are not ordered: an operator may move a group to any status
// its GroupType allows. The workflow constraints are on the payload that
// must accompany Rejected, InTransit and OutForDelivery.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Approved
	InTransit
	OutForDelivery
	Delivered
	Rejected
	Cancelled
)

var statusStrings = map[Status]string{
	Pending:        "pending",
	Approved:       "approved",
	InTransit:      "in_transit",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Rejected:       "rejected",
	Cancelled:      "cancelled",
}

// Statuses returns every valid status in workflow order.
func Statuses() []Status {
	return []Status{Pending, Approved, InTransit, OutForDelivery, Delivered, Rejected, Cancelled}
}

// ParseStatus converts the wire name, e.g. "out_for_delivery".
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusStrings {
		if name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. integers read from storage.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// IsDispatchPhase reports whether recording s requires driver details.
func (s Status) IsDispatchPhase() bool {
	return s == InTransit || s == OutForDelivery
}

// RequiresNote reports whether recording s requires a rejection note.
func (s Status) RequiresNote() bool {
	return s == Rejected
}
