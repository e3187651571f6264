package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/staynest/staynest-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeServiceError maps the service sentinel errors onto the HTTP error
// envelope; anything unrecognized becomes a bad request carrying the error
// text so the caller always gets a readable reason.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "not authenticated"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "resource not found"))
	case errors.Is(err, service.ErrAlreadyReviewed):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	default:
		msg := err.Error()
		if msg == "" {
			msg = "request failed"
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
	}
}
