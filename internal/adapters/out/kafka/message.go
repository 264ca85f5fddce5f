// Package kafka publishes order status events to Kafka with a sarama sync
// producer. Messages are JSON and keyed by order ID so the events of one
// order stay in one partition.
package kafka

import (
	"encoding/json"
	"time"

	"logistics/internal/core/domain/model/order"
)

// EventType is carried in the message header and body.
const EventType = "order.status_changed"

// StatusChangedMessage is the wire form of order.StatusChanged.
type StatusChangedMessage struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Group       string    `json:"group"`
	SupplierID  string    `json:"supplier_id,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ToLabel     string    `json:"to_label"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newStatusChangedMessage(event order.StatusChanged) StatusChangedMessage {
	return StatusChangedMessage{
		Type:        EventType,
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		Group:       event.Group.Type().String(),
		SupplierID:  event.Group.SupplierID(),
		From:        event.From.String(),
		To:          event.To.String(),
		ToLabel:     event.To.Display().Label,
		OccurredAt:  event.OccurredAt.UTC(),
	}
}

func encodeStatusChanged(event order.StatusChanged) ([]byte, error) {
	return json.Marshal(newStatusChangedMessage(event))
}
