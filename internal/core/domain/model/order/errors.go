package order

import "errors"

// Workflow errors. They are wrapped together with an errs type carrying the
// offending field, so callers can match either with errors.Is / errors.As.
var (
	ErrInvalidStatusForGroup = errors.New("status is not allowed for product group")
	ErrMissingRejectionNote  = errors.New("rejection note is required")
	ErrMissingDriverDetails  = errors.New("driver name and vehicle number are required")
	ErrUnknownSupplier       = errors.New("supplier is not on the order")
	ErrStatusConflict        = errors.New("status has changed since it was read")
	ErrNoRejectionRecorded   = errors.New("group has no rejection note to edit")
)
