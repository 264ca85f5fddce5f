package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders with the status of every product group
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Register an order with every product group pending
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Status overview of one order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Edit the note of a rejected group
	// (PUT /api/v1/orders/{orderId}/rejections)
	EditRejectionNote(ctx echo.Context, orderId openapi_types.UUID) error
	// Drop a transition that waits for driver details
	// (DELETE /api/v1/orders/{orderId}/transitions)
	DiscardPendingTransition(ctx echo.Context, orderId openapi_types.UUID, params DiscardPendingTransitionParams) error
	// Move one product group, or one LPO supplier, to a new status
	// (POST /api/v1/orders/{orderId}/transitions)
	RequestTransition(ctx echo.Context, orderId openapi_types.UUID) error
	// Complete a pending dispatch transition with driver details
	// (POST /api/v1/orders/{orderId}/transitions/confirm)
	ConfirmDriverDetails(ctx echo.Context, orderId openapi_types.UUID) error
	// Whether a group is awaiting driver details
	// (GET /api/v1/orders/{orderId}/transitions/pending)
	GetPendingTransition(ctx echo.Context, orderId openapi_types.UUID, params GetPendingTransitionParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error
	var params ListOrdersParams

	err = runtime.BindQueryParameter("form", true, true, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "per_page", ctx.QueryParams(), &params.PerPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter per_page: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &params.Search)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter search: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// EditRejectionNote converts echo context to params.
func (w *ServerInterfaceWrapper) EditRejectionNote(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.EditRejectionNote(ctx, orderId)
}

// DiscardPendingTransition converts echo context to params.
func (w *ServerInterfaceWrapper) DiscardPendingTransition(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	params, err := bindGroupParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DiscardPendingTransition(ctx, orderId, params)
}

// RequestTransition converts echo context to params.
func (w *ServerInterfaceWrapper) RequestTransition(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RequestTransition(ctx, orderId)
}

// ConfirmDriverDetails converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmDriverDetails(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ConfirmDriverDetails(ctx, orderId)
}

// GetPendingTransition converts echo context to params.
func (w *ServerInterfaceWrapper) GetPendingTransition(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	params, err := bindGroupParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetPendingTransition(ctx, orderId, params)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

func bindGroupParams(ctx echo.Context) (GroupParams, error) {
	var params GroupParams

	err := runtime.BindQueryParameter("form", true, true, "group", ctx.QueryParams(), &params.Group)
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter group: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "supplier_id", ctx.QueryParams(), &params.SupplierId)
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter supplier_id: %s", err))
	}
	return params, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers and prepends baseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId/rejections", wrapper.EditRejectionNote)
	router.DELETE(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.DiscardPendingTransition)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.RequestTransition)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions/confirm", wrapper.ConfirmDriverDetails)
	router.GET(baseURL+"/api/v1/orders/:orderId/transitions/pending", wrapper.GetPendingTransition)
}
