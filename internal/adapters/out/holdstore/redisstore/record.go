package redisstore

import (
	"encoding/json"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// holdRecord is the JSON stored under a hold key.
type holdRecord struct {
	OrderID     string    `json:"order_id"`
	Group       string    `json:"group"`
	From        string    `json:"from"`
	Target      string    `json:"target"`
	RequestedAt time.Time `json:"requested_at"`
}

func encodeHold(hold order.PendingTransition) ([]byte, error) {
	return json.Marshal(holdRecord{
		OrderID:     hold.OrderID().String(),
		Group:       hold.Group().String(),
		From:        hold.From().String(),
		Target:      hold.Target().String(),
		RequestedAt: hold.RequestedAt(),
	})
}

func decodeHold(data []byte) (order.PendingTransition, error) {
	var rec holdRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return order.PendingTransition{}, err
	}

	orderID, err := kernel.UUIDFromString(rec.OrderID)
	if err != nil {
		return order.PendingTransition{}, err
	}
	group, err := order.ParseGroupRef(rec.Group)
	if err != nil {
		return order.PendingTransition{}, err
	}
	from, err := order.ParseStatus(rec.From)
	if err != nil {
		return order.PendingTransition{}, err
	}
	target, err := order.ParseStatus(rec.Target)
	if err != nil {
		return order.PendingTransition{}, err
	}

	return order.NewPendingTransition(orderID, group, from, target, rec.RequestedAt)
}
