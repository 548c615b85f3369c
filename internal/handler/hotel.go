package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
	"github.com/iliyamo/hotel-booking-admin/internal/search"
	"github.com/iliyamo/hotel-booking-admin/internal/storage"
)

// HotelHandler serves hotel management for the owning admin.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Images storage.ImageStore
}

func NewHotelHandler(hotels *repository.HotelRepo, images storage.ImageStore) *HotelHandler {
	return &HotelHandler{Hotels: hotels, Images: images}
}

type hotelStatusReq struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type closeHotelReq struct {
	Dates []string `json:"dates" validate:"required,min=1"`
}

// AddHotel accepts multipart name, location and an optional image file.
func (h *HotelHandler) AddHotel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	if name == "" || location == "" {
		return badRequest(c, "name and location are required")
	}

	hotel := &model.Hotel{OwnerID: uid, Name: name, Location: location, Status: model.HotelActive}
	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "unreadable image")
		}
		defer f.Close()
		url, err := h.Images.Save(c.Request().Context(), fh.Filename, f)
		if err != nil {
			return respondError(c, err)
		}
		hotel.Image = url
	case !errors.Is(err, http.ErrMissingFile):
		return badRequest(c, "invalid multipart form")
	}

	if err := h.Hotels.Create(c.Request().Context(), hotel); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Hotel added successfully", "hotel": hotel})
}

// UpdateHotel changes the status of an owned hotel.
func (h *HotelHandler) UpdateHotel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	var req hotelStatusReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Hotels.UpdateStatus(ctx, id, uid, req.Status); err != nil {
		return respondError(c, err)
	}
	hotel, err := h.Hotels.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated", "hotel": hotel})
}

// CloseHotel adds days on which the hotel takes no bookings.
func (h *HotelHandler) CloseHotel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	var req closeHotelReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dates := make([]model.Date, 0, len(req.Dates))
	for _, s := range req.Dates {
		d, err := model.ParseDate(s)
		if err != nil {
			return badRequest(c, "invalid date: "+s)
		}
		dates = append(dates, d)
	}

	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByIDAndOwner(ctx, id, uid); err != nil {
		return respondError(c, err)
	}
	if err := h.Hotels.AddClosedDates(ctx, id, dates); err != nil {
		return respondError(c, err)
	}
	hotel, err := h.Hotels.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Closed dates added", "hotel": hotel})
}

// GetHotels lists the caller's hotels.
func (h *HotelHandler) GetHotels(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	hotels, err := h.Hotels.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": hotels})
}

// Search ranks the caller's hotels against ?q=.
func (h *HotelHandler) Search(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return badRequest(c, "q is required")
	}
	hotels, err := h.Hotels.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	res := search.Rank(q, hotels)
	return c.JSON(http.StatusOK, echo.Map{"query": q, "hits": res.Hits, "suggestion": res.Suggestion})
}
