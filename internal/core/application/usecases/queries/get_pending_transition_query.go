package queries

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetPendingTransitionQueryIsNotConstructed = errors.New(
	"GetPendingTransitionQuery must be created via NewGetPendingTransitionQuery constructor",
)

// GetPendingTransitionQuery asks whether a group is awaiting driver details.
type GetPendingTransitionQuery struct {
	orderID kernel.UUID
	group   order.GroupRef

	guard guard.ConstructorGuard
}

func NewGetPendingTransitionQuery(orderID kernel.UUID, group order.GroupRef) (GetPendingTransitionQuery, error) {
	if err := errors.Join(orderID.Validate(), group.Validate()); err != nil {
		return GetPendingTransitionQuery{}, err
	}
	return GetPendingTransitionQuery{orderID: orderID, group: group, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingTransitionQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingTransitionQueryIsNotConstructed)
}

// GetPendingTransitionQueryResponse reports the open hold, if any. Pending is
// nil when the group is not awaiting details.
type GetPendingTransitionQueryResponse struct {
	AwaitingDetails bool
	Pending         *PendingView
}

type GetPendingTransitionQueryHandler struct {
	holds ports.HoldStore
}

func NewGetPendingTransitionQueryHandler(holds ports.HoldStore) GetPendingTransitionQueryHandler {
	return GetPendingTransitionQueryHandler{holds: holds}
}

func (h GetPendingTransitionQueryHandler) Handle(
	ctx context.Context,
	query GetPendingTransitionQuery,
) (GetPendingTransitionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPendingTransitionQueryResponse{}, err
	}

	hold, err := h.holds.Get(ctx, query.orderID, query.group)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return GetPendingTransitionQueryResponse{}, nil
	}
	if err != nil {
		return GetPendingTransitionQueryResponse{}, err
	}

	return GetPendingTransitionQueryResponse{
		AwaitingDetails: true,
		Pending: &PendingView{
			From:        hold.From(),
			Target:      hold.Target(),
			RequestedAt: hold.RequestedAt(),
		},
	}, nil
}
