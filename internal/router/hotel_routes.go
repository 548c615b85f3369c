package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/handler"
)

// RegisterHotels registers hotel and room management under /api/hotel and
// /api/room.  Every route is scoped to hotels the caller owns.
func RegisterHotels(e *echo.Echo, h *handler.HotelHandler, r *handler.RoomHandler, g Guard) {
	hotels := g.Group(e, "/api/hotel")
	hotels.POST("/addhotel", h.AddHotel)
	hotels.PUT("/updatehotel/:id", h.UpdateHotel)
	hotels.PUT("/closehotel/:id", h.CloseHotel)
	hotels.GET("/gethotels", h.GetHotels)
	hotels.GET("/search", h.Search)

	rooms := g.Group(e, "/api/room")
	rooms.POST("/addroomtype", r.AddRoomType)
	rooms.GET("/gethotelrooms/:hotelId", r.GetHotelRooms)
	rooms.GET("/roomtypehotel/:hotelId", r.RoomTypesByHotel)
	rooms.GET("/rooms/:hotelId/:roomTypeId", r.RoomsByHotelAndType)
	rooms.POST("/updateroomprice/:roomTypeId", r.UpdateRoomPrice)
	rooms.PUT("/roomstatus/:roomId", r.RoomStatus)
}
