// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row together with its child tables.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number    string    `gorm:"uniqueIndex"`
	Customer  string
	Site      string
	CreatedAt time.Time
	UpdatedAt time.Time

	LineItems     []LineItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Statuses      []StatusDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Rejections    []RejectionDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DriverDetails []DriverDetailsDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO stores materials as a jsonb array.
type LineItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Position   int
	Product    string
	GroupType  int `gorm:"type:smallint"`
	SupplierID string
	Quantity   int
	Materials  []MaterialDTO `gorm:"type:jsonb;serializer:json"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

type MaterialDTO struct {
	Name            string  `json:"name"`
	Unit            string  `json:"unit"`
	QuantityPerUnit float64 `json:"quantity_per_unit"`
}

// StatusDTO is one status slot. SupplierID is empty for every group but LPO.
type StatusDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupType  int       `gorm:"type:smallint;primaryKey;autoIncrement:false"`
	SupplierID string    `gorm:"primaryKey"`
	Status     int       `gorm:"type:smallint"`
}

func (StatusDTO) TableName() string {
	return "order_statuses"
}

type RejectionDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupType  int       `gorm:"type:smallint;primaryKey;autoIncrement:false"`
	SupplierID string    `gorm:"primaryKey"`
	Note       string
	RecordedAt time.Time
}

func (RejectionDTO) TableName() string {
	return "order_rejections"
}

type DriverDetailsDTO struct {
	OrderID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupType     int       `gorm:"type:smallint;primaryKey;autoIncrement:false"`
	SupplierID    string    `gorm:"primaryKey"`
	Phase         int       `gorm:"type:smallint;primaryKey;autoIncrement:false"`
	DriverName    string
	VehicleNumber string
	RecordedAt    time.Time
}

func (DriverDetailsDTO) TableName() string {
	return "order_driver_details"
}

// fromDomain flattens the aggregate into the order row and its child rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	dto := OrderDTO{
		ID:        orderID,
		Number:    aggregate.Number(),
		Customer:  aggregate.Customer(),
		Site:      aggregate.Site(),
		CreatedAt: aggregate.CreatedAt(),
	}

	for i, item := range aggregate.LineItems() {
		materials := make([]MaterialDTO, 0, len(item.Materials()))
		for _, m := range item.Materials() {
			materials = append(materials, MaterialDTO{Name: m.Name, Unit: m.Unit, QuantityPerUnit: m.QuantityPerUnit})
		}
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:         item.ID().Bytes(),
			OrderID:    orderID,
			Position:   i,
			Product:    item.Product(),
			GroupType:  int(item.Group()),
			SupplierID: item.SupplierID(),
			Quantity:   item.Quantity(),
			Materials:  materials,
		})
	}

	for ref, s := range aggregate.Statuses() {
		dto.Statuses = append(dto.Statuses, StatusDTO{
			OrderID:    orderID,
			GroupType:  int(ref.Type()),
			SupplierID: ref.SupplierID(),
			Status:     int(s),
		})
	}

	for _, r := range aggregate.Rejections() {
		dto.Rejections = append(dto.Rejections, RejectionDTO{
			OrderID:    orderID,
			GroupType:  int(r.Group().Type()),
			SupplierID: r.Group().SupplierID(),
			Note:       r.Note(),
			RecordedAt: r.RecordedAt(),
		})
	}

	for _, d := range aggregate.AllDriverDetails() {
		dto.DriverDetails = append(dto.DriverDetails, DriverDetailsDTO{
			OrderID:       orderID,
			GroupType:     int(d.Group().Type()),
			SupplierID:    d.Group().SupplierID(),
			Phase:         int(d.Phase()),
			DriverName:    d.DriverName(),
			VehicleNumber: d.VehicleNumber(),
			RecordedAt:    d.RecordedAt(),
		})
	}

	return dto
}

// toDomain rebuilds the aggregate through RestoreOrder so stored rows are
// checked against the same invariants as live changes.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		itemID, idErr := kernel.UUIDFromBytes(li.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		materials := make([]order.Material, 0, len(li.Materials))
		for _, m := range li.Materials {
			materials = append(materials, order.Material{Name: m.Name, Unit: m.Unit, QuantityPerUnit: m.QuantityPerUnit})
		}
		item, itemErr := order.NewLineItem(
			itemID, li.Product, order.GroupType(li.GroupType), li.SupplierID, li.Quantity, materials,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	statuses := make(map[order.GroupRef]order.Status, len(dto.Statuses))
	for _, s := range dto.Statuses {
		ref, refErr := order.NewGroupRef(order.GroupType(s.GroupType), s.SupplierID)
		if refErr != nil {
			return nil, refErr
		}
		statuses[ref] = order.Status(s.Status)
	}

	rejections := make([]order.RejectionRecord, 0, len(dto.Rejections))
	for _, r := range dto.Rejections {
		ref, refErr := order.NewGroupRef(order.GroupType(r.GroupType), r.SupplierID)
		if refErr != nil {
			return nil, refErr
		}
		record, recErr := order.NewRejectionRecord(ref, r.Note, r.RecordedAt)
		if recErr != nil {
			return nil, recErr
		}
		rejections = append(rejections, record)
	}

	drivers := make([]order.DriverDetails, 0, len(dto.DriverDetails))
	for _, d := range dto.DriverDetails {
		ref, refErr := order.NewGroupRef(order.GroupType(d.GroupType), d.SupplierID)
		if refErr != nil {
			return nil, refErr
		}
		details, detErr := order.NewDriverDetails(ref, order.Status(d.Phase), d.DriverName, d.VehicleNumber, d.RecordedAt)
		if detErr != nil {
			return nil, detErr
		}
		drivers = append(drivers, details)
	}

	return order.RestoreOrder(
		id, dto.Number, dto.Customer, dto.Site, items, dto.CreatedAt, statuses, rejections, drivers,
	)
}
