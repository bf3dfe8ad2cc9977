package serviceutils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned when a successful call has no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseError logs err with full detail and writes a generic {"error": msg} body.
func ResponseError(c echo.Context, status int, msg string, err error) error {
	ctx := c.Request().Context()
	if err != nil {
		if status >= http.StatusInternalServerError {
			logger.ErrorLog(ctx, "%s: %v", msg, err)
		} else {
			logger.WarnLog(ctx, "%s: %v", msg, err)
		}
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}

// ResponseSuccess writes data as the body, or {"message": msg} when data is nil.
func ResponseSuccess(c echo.Context, status int, msg string, data interface{}) error {
	logger.DebugLog(c.Request().Context(), "%s", msg)
	if data == nil {
		return c.JSON(status, MessageResponse{Message: msg})
	}
	return c.JSON(status, data)
}

// StatusFromError maps domain errors onto HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
