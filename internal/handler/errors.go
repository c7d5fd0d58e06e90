package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handlersyss/BarSystem/internal/pos"
)

// errorResponse maps the core error taxonomy onto HTTP statuses. Validation
// and conflict failures are ordinary outcomes; a persistence failure means
// the durable store is out of reach and is surfaced as a bad gateway so an
// operator can be alerted instead of retrying blindly.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pos.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, pos.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pos.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, pos.ErrPersistence):
		status = http.StatusBadGateway
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
