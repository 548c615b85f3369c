package model

// RevenueLine is one booking's contribution to a hotel's revenue.
type RevenueLine struct {
	BookingID      uint64 `json:"bookingId"`
	HotelName      string `json:"hotelName"`
	CustomerName   string `json:"customerName"`
	RoomType       string `json:"roomType"`
	PricePerRoom   Money  `json:"pricePerRoom"`
	Quantity       int    `json:"quantity"`
	BookingRevenue Money  `json:"bookingRevenue"`
	StartDate      Date   `json:"startDate"`
	EndDate        Date   `json:"endDate"`
}

// HotelRevenue aggregates the booked revenue of a hotel over a window.
type HotelRevenue struct {
	HotelID      uint64        `json:"hotelId"`
	TotalRevenue Money         `json:"totalRevenue"`
	BookingCount int           `json:"bookingCount"`
	Details      []RevenueLine `json:"details"`
}

// DailyRevenue is the revenue of bookings starting on Date.
type DailyRevenue struct {
	Date    Date  `json:"date"`
	Revenue Money `json:"revenue"`
}
