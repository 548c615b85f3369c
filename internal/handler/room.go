package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
	"github.com/iliyamo/hotel-booking-admin/internal/service"
)

// RoomHandler serves room types, rooms and date rates.
type RoomHandler struct {
	RoomTypes *repository.RoomTypeRepo
	Rooms     *repository.RoomRepo
	Ownership *service.Ownership
	Status    *service.RoomService
}

func NewRoomHandler(rt *repository.RoomTypeRepo, rooms *repository.RoomRepo, own *service.Ownership, status *service.RoomService) *RoomHandler {
	return &RoomHandler{RoomTypes: rt, Rooms: rooms, Ownership: own, Status: status}
}

type addRoomTypeReq struct {
	Hotel      uint64      `json:"hotel" validate:"required"`
	Type       string      `json:"type" validate:"required"`
	TotalRooms int         `json:"totalRooms" validate:"required,min=1,max=1000"`
	Price      model.Money `json:"price" validate:"gt=0"`
}

type roomPriceReq struct {
	Date  string      `json:"date" validate:"required"`
	Price model.Money `json:"price" validate:"gt=0"`
}

type roomStatusReq struct {
	Status string `json:"status" validate:"required,oneof=available maintenance"`
}

// ownedHotel parses the hotel path parameter and checks the caller owns it.
func (h *RoomHandler) ownedHotel(c echo.Context, param string) (uint64, error) {
	uid, err := getUserID(c)
	if err != nil {
		return 0, unauthorized(c)
	}
	hotelID, ok := pathID(c, param)
	if !ok {
		return 0, badRequest(c, "invalid hotel id")
	}
	if err := h.Ownership.Authorize(c.Request().Context(), hotelID, uid); err != nil {
		return 0, respondError(c, err)
	}
	return hotelID, nil
}

// AddRoomType creates a room type and its rooms numbered 1..totalRooms.
func (h *RoomHandler) AddRoomType(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req addRoomTypeReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Ownership.Authorize(ctx, req.Hotel, uid); err != nil {
		return respondError(c, err)
	}
	rt := &model.RoomType{
		HotelID:    req.Hotel,
		Type:       strings.TrimSpace(req.Type),
		TotalRooms: req.TotalRooms,
		Price:      req.Price,
	}
	if err := h.RoomTypes.CreateWithRooms(ctx, rt); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Room type and rooms created", "roomType": rt})
}

// GetHotelRooms lists every room of a hotel with its type.
func (h *RoomHandler) GetHotelRooms(c echo.Context) error {
	hotelID, err := h.ownedHotel(c, "hotelId")
	if hotelID == 0 {
		return err
	}
	rooms, err := h.Rooms.ListByHotel(c.Request().Context(), hotelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// RoomTypesByHotel lists a hotel's room types, each with its rooms.
func (h *RoomHandler) RoomTypesByHotel(c echo.Context) error {
	hotelID, err := h.ownedHotel(c, "hotelId")
	if hotelID == 0 {
		return err
	}
	ctx := c.Request().Context()
	types, err := h.RoomTypes.ListByHotel(ctx, hotelID)
	if err != nil {
		return respondError(c, err)
	}
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return respondError(c, err)
	}
	byType := make(map[uint64]*model.RoomType, len(types))
	for _, rt := range types {
		rt.Rooms = []model.Room{}
		byType[rt.ID] = rt
	}
	for _, rw := range rooms {
		if rt, ok := byType[rw.RoomTypeID]; ok {
			rt.Rooms = append(rt.Rooms, rw.Room)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"roomTypes": types})
}

// RoomsByHotelAndType lists the rooms of one type.
func (h *RoomHandler) RoomsByHotelAndType(c echo.Context) error {
	hotelID, err := h.ownedHotel(c, "hotelId")
	if hotelID == 0 {
		return err
	}
	typeID, ok := pathID(c, "roomTypeId")
	if !ok {
		return badRequest(c, "invalid room type id")
	}
	rooms, err := h.Rooms.ListByHotelAndType(c.Request().Context(), hotelID, typeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// UpdateRoomPrice sets the price of a room type for one day.
func (h *RoomHandler) UpdateRoomPrice(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	typeID, ok := pathID(c, "roomTypeId")
	if !ok {
		return badRequest(c, "invalid room type id")
	}
	var req roomPriceReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	day, err := model.ParseDate(req.Date)
	if err != nil {
		return badRequest(c, "invalid date")
	}

	ctx := c.Request().Context()
	rt, err := h.RoomTypes.GetByID(ctx, typeID)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Ownership.Authorize(ctx, rt.HotelID, uid); err != nil {
		// A foreign room type is reported like a missing one.
		if errors.Is(err, repository.ErrHotelNotFound) {
			err = repository.ErrRoomTypeNotFound
		}
		return respondError(c, err)
	}
	if err := h.RoomTypes.UpsertRate(ctx, typeID, day, req.Price); err != nil {
		return respondError(c, err)
	}
	rates, err := h.RoomTypes.ListRates(ctx, typeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Price updated for the selected date", "ratesByDate": rates})
}

// RoomStatus moves a room between available and maintenance.
func (h *RoomHandler) RoomStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return badRequest(c, "invalid room id")
	}
	var req roomStatusReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	room, err := h.Status.SetStatus(c.Request().Context(), uid, roomID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Room is booked"})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated", "room": room})
}
