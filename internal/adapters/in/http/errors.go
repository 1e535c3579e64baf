package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal Server Error"

// statusOf maps use case errors onto HTTP statuses. The order of the cases
// matters: the specific workflow errors are checked before the generic value
// errors they may wrap.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrRestaurantUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, commands.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, commands.ErrInvalidLineItems),
		errors.Is(err, services.ErrInvalidAssignmentState),
		errors.Is(err, services.ErrInvalidRider),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NewErrorHandler renders errors in the API envelope. Unmapped errors are
// logged and reported with a generic message.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusOf(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		if code == http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err))
			message = internalErrorMessage
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = failure(c, code, message)
		}
		if err != nil {
			logger.Error("write error response", zap.Error(err))
		}
	}
}
