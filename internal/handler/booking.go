package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
	"github.com/iliyamo/hotel-booking-admin/internal/service"
)

// BookingHandler serves bookings and room occupancy.
type BookingHandler struct {
	Bookings  *service.BookingService
	History   *repository.BookingRepo
	Rooms     *repository.RoomRepo
	Ownership *service.Ownership
}

func NewBookingHandler(bs *service.BookingService, history *repository.BookingRepo, rooms *repository.RoomRepo, own *service.Ownership) *BookingHandler {
	return &BookingHandler{Bookings: bs, History: history, Rooms: rooms, Ownership: own}
}

type bookReq struct {
	Hotel        uint64     `json:"hotel" validate:"required"`
	RoomType     uint64     `json:"roomType" validate:"required"`
	Quantity     int        `json:"quantity" validate:"min=0"`
	StartDate    model.Date `json:"startDate"`
	EndDate      model.Date `json:"endDate"`
	CustomerName string     `json:"customerName" validate:"required"`
	PhoneNumber  string     `json:"phoneNumber" validate:"required"`
	AadharNumber string     `json:"aadharNumber" validate:"required"`
	Rooms        []uint64   `json:"rooms" validate:"required,min=1"`
}

// Book reserves rooms of one type for a stay.
func (h *BookingHandler) Book(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req bookReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	res, err := h.Bookings.Book(c.Request().Context(), uid, service.BookingInput{
		HotelID:      req.Hotel,
		RoomTypeID:   req.RoomType,
		RoomIDs:      req.Rooms,
		Quantity:     req.Quantity,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CustomerName: strings.TrimSpace(req.CustomerName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		AadharNumber: strings.TrimSpace(req.AadharNumber),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "Rooms booked successfully",
		"booking":     res.Booking,
		"bookedRooms": res.BookedRooms,
	})
}

// Cancel cancels a booking and frees its rooms.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "bookingId")
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	res, err := h.Bookings.Cancel(c.Request().Context(), uid, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Booking cancelled successfully",
		"booking":        res.Booking,
		"cancelledRooms": res.CancelledRooms,
	})
}

// BookedRooms lists the rooms of a type with their latest active stay.
func (h *BookingHandler) BookedRooms(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	hotelID, ok := pathID(c, "hotel")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	typeID, ok := pathID(c, "roomType")
	if !ok {
		return badRequest(c, "invalid room type id")
	}
	ctx := c.Request().Context()
	if err := h.Ownership.Authorize(ctx, hotelID, uid); err != nil {
		return respondError(c, err)
	}
	rooms, err := h.Rooms.ListOccupancy(ctx, hotelID, typeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// BookingHistory lists every booking across the caller's hotels.
func (h *BookingHandler) BookingHistory(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	list, err := h.History.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	if list == nil {
		list = []*model.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Booking history fetched successfully",
		"total":    len(list),
		"bookings": list,
	})
}
