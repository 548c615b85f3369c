package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/service"
)

type RevenueHandler struct {
	Revenues *service.RevenueService
}

func NewRevenueHandler(rs *service.RevenueService) *RevenueHandler {
	return &RevenueHandler{Revenues: rs}
}

// Revenue reports a hotel's booked revenue between two dates.
func (h *RevenueHandler) Revenue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	hotelID, ok := pathID(c, "hotelId")
	if !ok {
		return badRequest(c, "invalid hotel id")
	}
	from, err := model.ParseDate(c.Param("startDate"))
	if err != nil {
		return badRequest(c, "invalid startDate")
	}
	to, err := model.ParseDate(c.Param("endDate"))
	if err != nil {
		return badRequest(c, "invalid endDate")
	}
	rev, err := h.Revenues.HotelRevenue(c.Request().Context(), uid, hotelID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	details := rev.Details
	if details == nil {
		details = []model.RevenueLine{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Revenue calculated successfully",
		"hotelId":      hotelID,
		"totalRevenue": rev.TotalRevenue,
		"bookingCount": rev.BookingCount,
		"details":      details,
	})
}

// Last3MonthRevenue buckets the caller's revenue by day.
func (h *RevenueHandler) Last3MonthRevenue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	hist, err := h.Revenues.LastThreeMonths(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	days := hist.History
	if days == nil {
		days = []model.DailyRevenue{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Last 3 months revenue fetched successfully",
		"from":         hist.From,
		"to":           hist.To,
		"totalRevenue": hist.TotalRevenue,
		"history":      days,
	})
}
