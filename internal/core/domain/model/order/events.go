package order

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// StatusChanged is raised whenever a transition is applied to a group.
type StatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber string
	Group       GroupRef
	From        Status
	To          Status
	OccurredAt  time.Time
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []StatusChanged {
	out := make([]StatusChanged, len(o.events))
	copy(out, o.events)
	return out
}

// ClearDomainEvents drops raised events once they are handed to the outbox.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(ref GroupRef, from, to Status, at time.Time) {
	o.events = append(o.events, StatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number,
		Group:       ref,
		From:        from,
		To:          to,
		OccurredAt:  at,
	})
}
