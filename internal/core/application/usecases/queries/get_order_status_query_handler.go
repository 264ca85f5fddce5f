package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// OrderReader loads an order aggregate for reading.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetOrderStatusQueryHandler builds the order overview from the aggregate
// and the holds that are still open for it.
type GetOrderStatusQueryHandler struct {
	orders OrderReader
	holds  ports.HoldStore
}

func NewGetOrderStatusQueryHandler(orders OrderReader, holds ports.HoldStore) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{orders: orders, holds: holds}
}

func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	holds, err := h.holds.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}
	pending := make(map[order.GroupRef]order.PendingTransition, len(holds))
	for _, hold := range holds {
		pending[hold.Group()] = hold
	}

	response := GetOrderStatusQueryResponse{
		ID:             o.ID(),
		Number:         o.Number(),
		Customer:       o.Customer(),
		Site:           o.Site(),
		CreatedAt:      o.CreatedAt(),
		Groups:         make([]GroupView, 0, len(order.GroupTypes())),
		MaterialTotals: o.MaterialTotals(),
	}
	for _, g := range order.GroupTypes() {
		response.Groups = append(response.Groups, groupView(o, g, pending))
	}

	return response, nil
}

func groupView(o *order.Order, g order.GroupType, pending map[order.GroupRef]order.PendingTransition) GroupView {
	view := GroupView{
		Type:   g,
		Label:  g.Label(),
		Status: newStatusView(o.GroupStatus(g)),
	}

	if g.IsPerSupplier() {
		for _, supplier := range o.Suppliers() {
			view.Slots = append(view.Slots, slotView(o, order.MustGroupRef(g, supplier), pending))
		}
	} else {
		view.Slots = []SlotView{slotView(o, order.MustGroupRef(g, ""), pending)}
	}

	for _, item := range o.LineItemsOf(g) {
		view.LineItems = append(view.LineItems, LineItemView{
			ID:         item.ID(),
			Product:    item.Product(),
			SupplierID: item.SupplierID(),
			Quantity:   item.Quantity(),
			Materials:  item.Materials(),
		})
	}

	return view
}

func slotView(o *order.Order, ref order.GroupRef, pending map[order.GroupRef]order.PendingTransition) SlotView {
	status, _ := o.StatusOf(ref)
	slot := SlotView{
		SupplierID: ref.SupplierID(),
		Status:     newStatusView(status),
	}

	if r, ok := o.Rejection(ref); ok {
		slot.Rejection = &RejectionView{Note: r.Note(), RecordedAt: r.RecordedAt()}
	}

	for _, phase := range []order.Status{order.InTransit, order.OutForDelivery} {
		if d, ok := o.DriverDetailsFor(ref, phase); ok {
			slot.Drivers = append(slot.Drivers, DriverView{
				Phase:         phase,
				DriverName:    d.DriverName(),
				VehicleNumber: d.VehicleNumber(),
				RecordedAt:    d.RecordedAt(),
			})
		}
	}

	if hold, ok := pending[ref]; ok {
		slot.AwaitingDetails = &PendingView{
			From:        hold.From(),
			Target:      hold.Target(),
			RequestedAt: hold.RequestedAt(),
		}
	}

	return slot
}
