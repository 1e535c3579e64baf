package http

import (
	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope wraps every JSON body the API returns.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Status: statusSuccess, Message: message, Data: data})
}

func failure(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Status: statusError, Message: message})
}
