package queries

import (
	"context"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the order list straight from the tables,
// newest orders first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const searchFilter = `(? = '' OR number ILIKE ? ESCAPE '\' OR customer ILIKE ? ESCAPE '\' OR site ILIKE ? ESCAPE '\')`

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	response := ListOrdersQueryResponse{
		Items:   make([]OrderSummary, 0),
		Page:    query.Page(),
		PerPage: query.PerPage(),
	}

	db := h.db.WithContext(ctx)
	pattern := "%" + likeEscaper.Replace(query.Search()) + "%"
	filterArgs := []any{query.Search(), pattern, pattern, pattern}

	err := db.Raw(`SELECT count(*) FROM orders WHERE `+searchFilter, filterArgs...).
		Scan(&response.Total).Error
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	if response.Total == 0 {
		return response, nil
	}

	rows, err := db.Raw(`
		SELECT
			id,
			number,
			customer,
			site,
			created_at
		FROM orders
		WHERE `+searchFilter+`
		ORDER BY created_at DESC, number
		LIMIT ? OFFSET ?
	`, append(filterArgs, query.PerPage(), query.offset())...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, query.PerPage())
	for rows.Next() {
		var (
			id        uuid.UUID
			summary   OrderSummary
			createdAt time.Time
		)
		if err = rows.Scan(&id, &summary.Number, &summary.Customer, &summary.Site, &createdAt); err != nil {
			return ListOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListOrdersQueryResponse{}, idErr
		}
		summary.ID = orderID
		summary.CreatedAt = createdAt

		ids = append(ids, id)
		response.Items = append(response.Items, summary)
	}
	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}
	if len(ids) == 0 {
		return response, nil
	}

	statuses, err := h.loadStatuses(db, ids)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	for i, id := range ids {
		response.Items[i].Groups = statuses[id].groupViews()
	}

	return response, nil
}

// slotStatuses holds the stored statuses of one order.
type slotStatuses struct {
	groups    map[order.GroupType]order.Status
	suppliers map[string]order.Status
}

func (s slotStatuses) groupViews() []GroupStatusView {
	views := make([]GroupStatusView, 0, len(order.GroupTypes()))
	for _, g := range order.GroupTypes() {
		var status order.Status
		switch {
		case g.IsPerSupplier():
			status = order.DeriveLpoAggregate(s.suppliers)
		case s.groups[g] != order.Unknown:
			status = s.groups[g]
		default:
			status = order.Pending
		}
		views = append(views, GroupStatusView{Type: g, Label: g.Label(), Status: newStatusView(status)})
	}
	return views
}

func (h ListOrdersQueryHandler) loadStatuses(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]slotStatuses, error) {
	rows, err := db.Raw(`
		SELECT
			order_id,
			group_type,
			supplier_id,
			status
		FROM order_statuses
		WHERE order_id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]slotStatuses, len(ids))
	for rows.Next() {
		var (
			orderID    uuid.UUID
			groupType  int
			supplierID string
			status     int
		)
		if err = rows.Scan(&orderID, &groupType, &supplierID, &status); err != nil {
			return nil, err
		}

		slots, ok := out[orderID]
		if !ok {
			slots = slotStatuses{
				groups:    make(map[order.GroupType]order.Status),
				suppliers: make(map[string]order.Status),
			}
			out[orderID] = slots
		}

		if order.GroupType(groupType).IsPerSupplier() {
			slots.suppliers[supplierID] = order.Status(status)
		} else {
			slots.groups[order.GroupType(groupType)] = order.Status(status)
		}
	}

	return out, rows.Err()
}
