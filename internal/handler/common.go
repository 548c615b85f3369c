package handler // handler defines the HTTP handlers of the admin API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/repository"
	"github.com/iliyamo/hotel-booking-admin/internal/service"
	"github.com/iliyamo/hotel-booking-admin/internal/storage"
)

// getUserID extracts the admin id stored by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

// bindValid binds the request body into req and runs struct validation.
// It writes the 400 response itself and reports whether the caller may
// continue.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, badRequest(c, validationMessage(err))
	}
	return true, nil
}

// respondError maps service and repository errors to HTTP responses.
// Unexpected errors are logged and reported as 500 without their message.
func respondError(c echo.Context, err error) error {
	var (
		verr     *service.ValidationError
		conflict *service.RoomConflictError
	)
	switch {
	case errors.As(err, &verr):
		return badRequest(c, verr.Msg)
	case errors.As(err, &conflict):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":            conflict.Error(),
			"conflictingRooms": conflict.RoomNumbers,
		})
	case errors.Is(err, repository.ErrHotelNotFound),
		errors.Is(err, repository.ErrRoomTypeNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrAdminNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrBookingAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Booking is already cancelled"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, storage.ErrUnsupportedImage):
		return badRequest(c, "image must be jpg, png, gif or webp")
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
