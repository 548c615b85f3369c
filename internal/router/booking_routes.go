package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/handler"
)

// RegisterBookings registers bookings and revenue reports under
// /api/booking.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, rv *handler.RevenueHandler, g Guard) {
	grp := g.Group(e, "/api/booking")
	grp.POST("/book", b.Book)
	grp.POST("/cancelbooking/:bookingId", b.Cancel)
	grp.GET("/booked-rooms/:hotel/:roomType", b.BookedRooms)
	grp.GET("/bookinghistory", b.BookingHistory)

	grp.GET("/revenue/:hotelId/:startDate/:endDate", rv.Revenue)
	grp.GET("/last3monthrevenue", rv.Last3MonthRevenue)
}
