package http

import (
	"strings"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/generated/servers"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func groupRefFrom(group servers.GroupType, supplierID *string) (order.GroupRef, error) {
	groupType, err := order.ParseGroupType(string(group))
	if err != nil {
		return order.GroupRef{}, err
	}
	return order.NewGroupRef(groupType, strings.TrimSpace(deref(supplierID)))
}

func toStatusInfo(v queries.StatusView) servers.StatusInfo {
	return servers.StatusInfo{
		Status: servers.Status(v.Status.String()),
		Display: servers.StatusDisplay{
			Label: v.Display.Label,
			Color: v.Display.Color,
			Icon:  v.Display.Icon,
		},
	}
}

func toMaterials(in []order.Material) []servers.Material {
	out := make([]servers.Material, 0, len(in))
	for _, m := range in {
		out = append(out, servers.Material{Name: m.Name, Unit: m.Unit, QuantityPerUnit: m.QuantityPerUnit})
	}
	return out
}

func fromMaterials(in *[]servers.Material) []order.Material {
	if in == nil {
		return nil
	}
	out := make([]order.Material, 0, len(*in))
	for _, m := range *in {
		out = append(out, order.Material{Name: m.Name, Unit: m.Unit, QuantityPerUnit: m.QuantityPerUnit})
	}
	return out
}

func toPending(v *queries.PendingView) *servers.PendingTransition {
	if v == nil {
		return nil
	}
	return &servers.PendingTransition{
		From:        servers.Status(v.From.String()),
		Target:      servers.Status(v.Target.String()),
		RequestedAt: v.RequestedAt,
	}
}

func toOrderPage(resp queries.ListOrdersQueryResponse) servers.OrderPage {
	page := servers.OrderPage{
		Items:   make([]servers.OrderSummary, 0, len(resp.Items)),
		Page:    resp.Page,
		PerPage: resp.PerPage,
		Total:   resp.Total,
	}
	for _, item := range resp.Items {
		summary := servers.OrderSummary{
			Id:        item.ID.Bytes(),
			Number:    item.Number,
			Customer:  item.Customer,
			Site:      item.Site,
			CreatedAt: item.CreatedAt,
			Groups:    make([]servers.GroupStatus, 0, len(item.Groups)),
		}
		for _, g := range item.Groups {
			summary.Groups = append(summary.Groups, servers.GroupStatus{
				Group:  servers.GroupType(g.Type.String()),
				Label:  g.Label,
				Status: toStatusInfo(g.Status),
			})
		}
		page.Items = append(page.Items, summary)
	}
	return page
}

func toOrderOverview(resp queries.GetOrderStatusQueryResponse) servers.OrderOverview {
	overview := servers.OrderOverview{
		Id:             resp.ID.Bytes(),
		Number:         resp.Number,
		Customer:       resp.Customer,
		Site:           resp.Site,
		CreatedAt:      resp.CreatedAt,
		Groups:         make([]servers.ProductGroup, 0, len(resp.Groups)),
		MaterialTotals: make([]servers.MaterialTotal, 0, len(resp.MaterialTotals)),
	}

	for _, t := range resp.MaterialTotals {
		overview.MaterialTotals = append(overview.MaterialTotals,
			servers.MaterialTotal{Name: t.Name, Unit: t.Unit, Quantity: t.Quantity})
	}

	for _, g := range resp.Groups {
		group := servers.ProductGroup{
			Group:     servers.GroupType(g.Type.String()),
			Label:     g.Label,
			Status:    toStatusInfo(g.Status),
			Slots:     make([]servers.StatusSlot, 0, len(g.Slots)),
			LineItems: make([]servers.LineItem, 0, len(g.LineItems)),
		}

		for _, slot := range g.Slots {
			out := servers.StatusSlot{
				SupplierId:      optional(slot.SupplierID),
				Status:          toStatusInfo(slot.Status),
				Drivers:         make([]servers.Driver, 0, len(slot.Drivers)),
				AwaitingDetails: toPending(slot.AwaitingDetails),
			}
			if slot.Rejection != nil {
				out.Rejection = &servers.Rejection{Note: slot.Rejection.Note, RecordedAt: slot.Rejection.RecordedAt}
			}
			for _, d := range slot.Drivers {
				out.Drivers = append(out.Drivers, servers.Driver{
					Phase:         servers.Status(d.Phase.String()),
					DriverName:    d.DriverName,
					VehicleNumber: d.VehicleNumber,
					RecordedAt:    d.RecordedAt,
				})
			}
			group.Slots = append(group.Slots, out)
		}

		for _, li := range g.LineItems {
			group.LineItems = append(group.LineItems, servers.LineItem{
				Id:         li.ID.Bytes(),
				Product:    li.Product,
				SupplierId: optional(li.SupplierID),
				Quantity:   li.Quantity,
				Materials:  toMaterials(li.Materials),
			})
		}

		overview.Groups = append(overview.Groups, group)
	}

	return overview
}

func toTransitionResult(t order.Transition) servers.TransitionResult {
	result := servers.TransitionResult{
		Outcome:    servers.TransitionResultOutcome(t.Kind().String()),
		Group:      servers.GroupType(t.Group().Type().String()),
		SupplierId: optional(t.Group().SupplierID()),
		From:       servers.Status(t.From().String()),
		Status: servers.StatusInfo{
			Status: servers.Status(t.Status().String()),
			Display: servers.StatusDisplay{
				Label: t.Status().Display().Label,
				Color: t.Status().Display().Color,
				Icon:  t.Status().Display().Icon,
			},
		},
	}
	if pending, ok := t.Pending(); ok {
		target := servers.Status(pending.Target().String())
		result.Target = &target
	}
	return result
}
