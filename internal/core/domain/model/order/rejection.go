package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRejectionRecordIsNotConstructed = errors.New("RejectionRecord must be created via NewRejectionRecord")

// RejectionRecord is the operator's explanation for rejecting a group or an
// LPO supplier. It is immutable; WithNote produces the edited copy.
type RejectionRecord struct { //nolint:recvcheck // value object
	group      GroupRef
	note       string
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewRejectionRecord trims note and fails with ErrMissingRejectionNote when nothing is left.
func NewRejectionRecord(group GroupRef, note string, recordedAt time.Time) (RejectionRecord, error) {
	if err := group.Validate(); err != nil {
		return RejectionRecord{}, err
	}

	note = strings.TrimSpace(note)
	if note == "" {
		return RejectionRecord{}, fmt.Errorf("%w: %w", ErrMissingRejectionNote, errs.NewValueIsRequiredError("note"))
	}

	return RejectionRecord{
		group:      group,
		note:       note,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (r RejectionRecord) Validate() error {
	return r.guard.Validate(ErrRejectionRecordIsNotConstructed)
}

func (r RejectionRecord) Group() GroupRef {
	return r.group
}

func (r RejectionRecord) Note() string {
	return r.note
}

func (r RejectionRecord) RecordedAt() time.Time {
	return r.recordedAt
}

// WithNote re-validates the replacement note and returns the edited record.
func (r RejectionRecord) WithNote(note string, editedAt time.Time) (RejectionRecord, error) {
	if err := r.Validate(); err != nil {
		return RejectionRecord{}, err
	}
	return NewRejectionRecord(r.group, note, editedAt)
}
