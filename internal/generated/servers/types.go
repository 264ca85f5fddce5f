// Package servers holds the HTTP contract of the order status API: the
// OpenAPI document, its request and response types, and the echo wiring
// that binds parameters before calling a ServerInterface.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// GroupType defines model for GroupType.
type GroupType string

const (
	GroupTypeHardware GroupType = "hardware"
	GroupTypeWorkshop GroupType = "workshop"
	GroupTypeLpo      GroupType = "lpo"
	GroupTypeCustom   GroupType = "custom"
)

// Status defines model for Status.
type Status string

// TransitionResultOutcome defines model for TransitionResult.Outcome.
type TransitionResultOutcome string

const (
	Applied         TransitionResultOutcome = "applied"
	AwaitingDetails TransitionResultOutcome = "awaiting_details"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Material defines model for Material.
type Material struct {
	Name            string  `json:"name" validate:"required"`
	Unit            string  `json:"unit"`
	QuantityPerUnit float64 `json:"quantity_per_unit" validate:"gt=0"`
}

// NewLineItem defines model for NewLineItem.
type NewLineItem struct {
	Product    string      `json:"product" validate:"required"`
	Group      GroupType   `json:"group" validate:"required,oneof=hardware workshop lpo custom"`
	SupplierId *string     `json:"supplier_id,omitempty"`
	Quantity   int         `json:"quantity" validate:"gt=0"`
	Materials  *[]Material `json:"materials,omitempty" validate:"omitempty,dive"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Number    string        `json:"number" validate:"required"`
	Customer  string        `json:"customer" validate:"required"`
	Site      *string       `json:"site,omitempty"`
	LineItems []NewLineItem `json:"line_items" validate:"required,min=1,dive"`
}

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	Id openapi_types.UUID `json:"id"`
}

// StatusDisplay defines model for StatusDisplay.
type StatusDisplay struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// StatusInfo defines model for StatusInfo.
type StatusInfo struct {
	Display StatusDisplay `json:"display"`
	Status  Status        `json:"status"`
}

// GroupStatus defines model for GroupStatus.
type GroupStatus struct {
	Group  GroupType  `json:"group"`
	Label  string     `json:"label"`
	Status StatusInfo `json:"status"`
}

// OrderSummary defines model for OrderSummary.
type OrderSummary struct {
	CreatedAt time.Time          `json:"created_at"`
	Customer  string             `json:"customer"`
	Groups    []GroupStatus      `json:"groups"`
	Id        openapi_types.UUID `json:"id"`
	Number    string             `json:"number"`
	Site      string             `json:"site"`
}

// OrderPage defines model for OrderPage.
type OrderPage struct {
	Items   []OrderSummary `json:"items"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Total   int64          `json:"total"`
}

// Rejection defines model for Rejection.
type Rejection struct {
	Note       string    `json:"note"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Driver defines model for Driver.
type Driver struct {
	DriverName    string    `json:"driver_name"`
	Phase         Status    `json:"phase"`
	RecordedAt    time.Time `json:"recorded_at"`
	VehicleNumber string    `json:"vehicle_number"`
}

// PendingTransition defines model for PendingTransition.
type PendingTransition struct {
	From        Status    `json:"from"`
	RequestedAt time.Time `json:"requested_at"`
	Target      Status    `json:"target"`
}

// StatusSlot defines model for StatusSlot.
type StatusSlot struct {
	AwaitingDetails *PendingTransition `json:"awaiting_details,omitempty"`
	Drivers         []Driver           `json:"drivers"`
	Rejection       *Rejection         `json:"rejection,omitempty"`
	Status          StatusInfo         `json:"status"`
	SupplierId      *string            `json:"supplier_id,omitempty"`
}

// LineItem defines model for LineItem.
type LineItem struct {
	Id         openapi_types.UUID `json:"id"`
	Materials  []Material         `json:"materials"`
	Product    string             `json:"product"`
	Quantity   int                `json:"quantity"`
	SupplierId *string            `json:"supplier_id,omitempty"`
}

// ProductGroup defines model for ProductGroup.
type ProductGroup struct {
	Group     GroupType    `json:"group"`
	Label     string       `json:"label"`
	LineItems []LineItem   `json:"line_items"`
	Slots     []StatusSlot `json:"slots"`
	Status    StatusInfo   `json:"status"`
}

// MaterialTotal defines model for MaterialTotal.
type MaterialTotal struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// OrderOverview defines model for OrderOverview.
type OrderOverview struct {
	CreatedAt      time.Time          `json:"created_at"`
	Customer       string             `json:"customer"`
	Groups         []ProductGroup     `json:"groups"`
	Id             openapi_types.UUID `json:"id"`
	MaterialTotals []MaterialTotal    `json:"material_totals"`
	Number         string             `json:"number"`
	Site           string             `json:"site"`
}

// TransitionRequest defines model for TransitionRequest.
type TransitionRequest struct {
	Current       *Status   `json:"current,omitempty"`
	DriverName    *string   `json:"driver_name,omitempty"`
	Group         GroupType `json:"group" validate:"required"`
	Note          *string   `json:"note,omitempty"`
	SupplierId    *string   `json:"supplier_id,omitempty"`
	Target        Status    `json:"target" validate:"required"`
	VehicleNumber *string   `json:"vehicle_number,omitempty"`
}

// TransitionResult defines model for TransitionResult.
type TransitionResult struct {
	From       Status                  `json:"from"`
	Group      GroupType               `json:"group"`
	Outcome    TransitionResultOutcome `json:"outcome"`
	Status     StatusInfo              `json:"status"`
	SupplierId *string                 `json:"supplier_id,omitempty"`
	Target     *Status                 `json:"target,omitempty"`
}

// DriverDetailsConfirmation defines model for DriverDetailsConfirmation.
type DriverDetailsConfirmation struct {
	DriverName    string    `json:"driver_name"`
	Group         GroupType `json:"group" validate:"required"`
	Phase         Status    `json:"phase" validate:"required"`
	SupplierId    *string   `json:"supplier_id,omitempty"`
	VehicleNumber string    `json:"vehicle_number"`
}

// RejectionNoteEdit defines model for RejectionNoteEdit.
type RejectionNoteEdit struct {
	Group      GroupType `json:"group" validate:"required"`
	Note       string    `json:"note"`
	SupplierId *string   `json:"supplier_id,omitempty"`
}

// PendingTransitionState defines model for PendingTransitionState.
type PendingTransitionState struct {
	AwaitingDetails bool               `json:"awaiting_details"`
	Pending         *PendingTransition `json:"pending,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders. Page and PerPage stay
// strings so the digit rules apply to the raw input.
type ListOrdersParams struct {
	Page    string  `form:"page" json:"page" validate:"required,number"`
	PerPage *string `form:"per_page,omitempty" json:"per_page,omitempty" validate:"omitempty,number,min=1,max=3"`
	Search  *string `form:"search,omitempty" json:"search,omitempty"`
}

// GroupParams defines the group selector shared by GetPendingTransition
// and DiscardPendingTransition.
type GroupParams struct {
	Group      GroupType `form:"group" json:"group" validate:"required"`
	SupplierId *string   `form:"supplier_id,omitempty" json:"supplier_id,omitempty"`
}

type GetPendingTransitionParams = GroupParams

type DiscardPendingTransitionParams = GroupParams

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// RequestTransitionJSONRequestBody defines body for RequestTransition for application/json ContentType.
type RequestTransitionJSONRequestBody = TransitionRequest

// ConfirmDriverDetailsJSONRequestBody defines body for ConfirmDriverDetails for application/json ContentType.
type ConfirmDriverDetailsJSONRequestBody = DriverDetailsConfirmation

// EditRejectionNoteJSONRequestBody defines body for EditRejectionNote for application/json ContentType.
type EditRejectionNoteJSONRequestBody = RejectionNoteEdit
