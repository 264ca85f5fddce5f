package http

import (
	"errors"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/generated/servers"
	"logistics/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// statusFor maps an application error to an HTTP status. Order matters:
// workflow sentinels are wrapped together with errs types.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, ports.ErrDuplicateOrder):
		return http.StatusConflict
	case errors.Is(err, order.ErrUnknownSupplier),
		errors.Is(err, commands.ErrNoPendingTransition),
		errors.Is(err, order.ErrNoRejectionRecorded),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidStatusForGroup),
		errors.Is(err, order.ErrMissingRejectionNote),
		errors.Is(err, order.ErrMissingDriverDetails),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrOrderNumberIsRequired),
		errors.Is(err, commands.ErrCustomerIsRequired),
		errors.Is(err, commands.ErrLineItemsAreRequired),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// ErrorHandler renders errors that escape handlers, e.g. from parameter
// binding or middleware, in the API error format.
func (s *Server) ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	if writeErr := s.fail(ctx, err); writeErr != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to write error response", "error", writeErr)
	}
}
