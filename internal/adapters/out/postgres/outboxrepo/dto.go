// Package outboxrepo stores order status events next to the order rows so
// they are written in the same transaction and relayed to the broker later.
package outboxrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid"`
	OrderNumber string
	GroupType   int `gorm:"type:smallint"`
	SupplierID  string
	FromStatus  int `gorm:"type:smallint"`
	ToStatus    int `gorm:"type:smallint"`
	OccurredAt  time.Time
	Attempts    int
	LastError   string
	PublishedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(event order.StatusChanged) MessageDTO {
	return MessageDTO{
		ID:          kernel.NewUUID().Bytes(),
		OrderID:     event.OrderID.Bytes(),
		OrderNumber: event.OrderNumber,
		GroupType:   int(event.Group.Type()),
		SupplierID:  event.Group.SupplierID(),
		FromStatus:  int(event.From),
		ToStatus:    int(event.To),
		OccurredAt:  event.OccurredAt,
	}
}

func toMessage(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	group, err := order.NewGroupRef(order.GroupType(dto.GroupType), dto.SupplierID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID: id,
		Event: order.StatusChanged{
			OrderID:     orderID,
			OrderNumber: dto.OrderNumber,
			Group:       group,
			From:        order.Status(dto.FromStatus),
			To:          order.Status(dto.ToStatus),
			OccurredAt:  dto.OccurredAt,
		},
		Attempts: dto.Attempts,
	}, nil
}
