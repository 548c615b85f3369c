package model

import "time"

// Booking status values.
const (
	BookingBooked    = "booked"
	BookingCancelled = "cancelled"
)

// Booking reserves one or more rooms of a single room type for the nights
// [StartDate, EndDate).  TotalAmount is priced when the booking is made.
type Booking struct {
	ID           uint64     `json:"id"`
	HotelID      uint64     `json:"hotel"`
	RoomTypeID   uint64     `json:"roomType"`
	RoomIDs      []uint64   `json:"rooms"`
	Quantity     int        `json:"quantity"`
	StartDate    Date       `json:"startDate"`
	EndDate      Date       `json:"endDate"`
	CustomerName string     `json:"customerName"`
	PhoneNumber  string     `json:"phoneNumber"`
	AadharNumber string     `json:"aadharNumber"`
	Status       string     `json:"status"`
	TotalAmount  Money      `json:"totalAmount"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BookingDetail is a booking joined with its hotel, room type and rooms, as
// shown in the booking history.
type BookingDetail struct {
	Booking
	HotelName     string `json:"hotelName"`
	HotelLocation string `json:"hotelLocation"`
	RoomTypeName  string `json:"roomTypeName"`
	RoomPrice     Money  `json:"roomPrice"`
	Rooms         []Room `json:"roomDetails"`
}
