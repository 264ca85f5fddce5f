package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/generated/servers"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	RequestTransitionHandler interface {
		Handle(ctx context.Context, cmd commands.RequestStatusTransitionCommand) (order.Transition, error)
	}
	ConfirmDriverDetailsHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmDriverDetailsCommand) (order.Transition, error)
	}
	DiscardPendingTransitionHandler interface {
		Handle(ctx context.Context, cmd commands.DiscardPendingTransitionCommand) error
	}
	EditRejectionNoteHandler interface {
		Handle(ctx context.Context, cmd commands.EditRejectionNoteCommand) error
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
	}
	GetOrderStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) (queries.GetOrderStatusQueryResponse, error)
	}
	GetPendingTransitionHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetPendingTransitionQuery,
		) (queries.GetPendingTransitionQueryResponse, error)
	}
)

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateOrder              CreateOrderHandler
	RequestTransition        RequestTransitionHandler
	ConfirmDriverDetails     ConfirmDriverDetailsHandler
	DiscardPendingTransition DiscardPendingTransitionHandler
	EditRejectionNote        EditRejectionNoteHandler

	ListOrders           ListOrdersHandler
	GetOrderStatus       GetOrderStatusHandler
	GetPendingTransition GetPendingTransitionHandler
}

// Server implements servers.ServerInterface on top of the application
// commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// bindBody decodes and validates a JSON request body.
func bindBody(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(body); err != nil {
		return err
	}
	return nil
}

func orderIDFrom(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func parseStatus(raw *servers.Status) (order.Status, error) {
	if raw == nil || *raw == "" {
		return order.Unknown, nil
	}
	return order.ParseStatus(string(*raw))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	if err := ctx.Validate(params); err != nil {
		return s.fail(ctx, err)
	}

	page, err := strconv.Atoi(params.Page)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("page", err))
	}

	var perPage *int
	if params.PerPage != nil {
		n, convErr := strconv.Atoi(*params.PerPage)
		if convErr != nil {
			return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("per_page", convErr))
		}
		perPage = &n
	}

	query, err := queries.NewListOrdersQuery(page, perPage, params.Search)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderPage(result))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	items := make([]commands.LineItemInput, 0, len(body.LineItems))
	for _, li := range body.LineItems {
		group, err := order.ParseGroupType(string(li.Group))
		if err != nil {
			return s.fail(ctx, err)
		}
		items = append(items, commands.LineItemInput{
			ID:         kernel.NewUUID(),
			Product:    li.Product,
			Group:      group,
			SupplierID: strings.TrimSpace(deref(li.SupplierId)),
			Quantity:   li.Quantity,
			Materials:  fromMaterials(li.Materials),
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, body.Number, body.Customer, deref(body.Site), items)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "Order created", "order_id", orderID.String(), "number", body.Number)
	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{Id: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := orderIDFrom(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderStatusQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	overview, err := s.handlers.GetOrderStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderOverview(overview))
}

// RequestTransition handles POST /api/v1/orders/{orderId}/transitions.
// An applied change answers 200, a dispatch phase held for driver
// details answers 202.
func (s *Server) RequestTransition(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.RequestTransitionJSONRequestBody
	if err := bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	id, err := orderIDFrom(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	group, err := groupRefFrom(body.Group, body.SupplierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(string(body.Target))
	if err != nil {
		return s.fail(ctx, err)
	}
	current, err := parseStatus(body.Current)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRequestStatusTransitionCommand(id, group, current, target, order.TransitionPayload{
		Note:          deref(body.Note),
		DriverName:    deref(body.DriverName),
		VehicleNumber: deref(body.VehicleNumber),
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	transition, err := s.handlers.RequestTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	code := http.StatusOK
	if transition.IsAwaitingDetails() {
		code = http.StatusAccepted
	}
	return ctx.JSON(code, toTransitionResult(transition))
}

// ConfirmDriverDetails handles POST /api/v1/orders/{orderId}/transitions/confirm.
// The phase names the dispatch status the details were entered for, so a
// dialog left open for a replaced hold cannot apply the newer phase.
func (s *Server) ConfirmDriverDetails(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.ConfirmDriverDetailsJSONRequestBody
	if err := bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	id, err := orderIDFrom(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	group, err := groupRefFrom(body.Group, body.SupplierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	phase, err := order.ParseStatus(string(body.Phase))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmDriverDetailsCommand(id, group, phase, body.DriverName, body.VehicleNumber)
	if err != nil {
		return s.fail(ctx, err)
	}

	transition, err := s.handlers.ConfirmDriverDetails.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTransitionResult(transition))
}

// DiscardPendingTransition handles DELETE /api/v1/orders/{orderId}/transitions.
func (s *Server) DiscardPendingTransition(
	ctx echo.Context,
	orderId openapi_types.UUID,
	params servers.DiscardPendingTransitionParams,
) error {
	id, err := orderIDFrom(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	group, err := groupRefFrom(params.Group, params.SupplierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDiscardPendingTransitionCommand(id, group)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.DiscardPendingTransition.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingTransition handles GET /api/v1/orders/{orderId}/transitions/pending.
func (s *Server) GetPendingTransition(
	ctx echo.Context,
	orderId openapi_types.UUID,
	params servers.GetPendingTransitionParams,
) error {
	id, err := orderIDFrom(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	group, err := groupRefFrom(params.Group, params.SupplierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetPendingTransitionQuery(id, group)
	if err != nil {
		return s.fail(ctx, err)
	}

	state, err := s.handlers.GetPendingTransition.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.PendingTransitionState{
		AwaitingDetails: state.AwaitingDetails,
		Pending:         toPending(state.Pending),
	})
}

// EditRejectionNote handles PUT /api/v1/orders/{orderId}/rejections.
func (s *Server) EditRejectionNote(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.EditRejectionNoteJSONRequestBody
	if err := bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	id, err := orderIDFrom(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	group, err := groupRefFrom(body.Group, body.SupplierId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewEditRejectionNoteCommand(id, group, body.Note)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.EditRejectionNote.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
