package queries

import (
	"time"

	"logistics/internal/core/domain/model/order"
)

// StatusView is a status together with its presentation.
type StatusView struct {
	Status  order.Status
	Display order.Display
}

func newStatusView(s order.Status) StatusView {
	return StatusView{Status: s, Display: s.Display()}
}

type DriverView struct {
	Phase         order.Status
	DriverName    string
	VehicleNumber string
	RecordedAt    time.Time
}

type RejectionView struct {
	Note       string
	RecordedAt time.Time
}

// PendingView describes a dispatch transition waiting for driver details.
type PendingView struct {
	From        order.Status
	Target      order.Status
	RequestedAt time.Time
}
