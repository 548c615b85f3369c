package model

import "time"

// Room status values.
const (
	RoomAvailable   = "available"
	RoomBooked      = "booked"
	RoomMaintenance = "maintenance"
)

// RoomType groups identical rooms of a hotel under one base nightly price.
// AvailableRooms counts the rooms of the type whose status is available.
type RoomType struct {
	ID             uint64     `json:"id"`
	HotelID        uint64     `json:"hotel"`
	Type           string     `json:"type"`
	TotalRooms     int        `json:"totalRooms"`
	AvailableRooms int        `json:"availableRooms"`
	Price          Money      `json:"price"`
	RatesByDate    []RoomRate `json:"ratesByDate"`
	Rooms          []Room     `json:"rooms,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// RoomRate overrides the base price of a room type for one calendar day.
type RoomRate struct {
	Date  Date  `json:"date"`
	Price Money `json:"price"`
}

// Room is a numbered physical room.
type Room struct {
	ID         uint64    `json:"id"`
	HotelID    uint64    `json:"hotel"`
	RoomTypeID uint64    `json:"roomType"`
	RoomNumber int       `json:"roomNumber"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RoomTypeSummary is the slice of a room type embedded in room listings.
type RoomTypeSummary struct {
	ID    uint64 `json:"id"`
	Type  string `json:"type"`
	Price Money  `json:"price"`
}

// RoomWithType is a room listed together with its type.
type RoomWithType struct {
	Room
	RoomType RoomTypeSummary `json:"roomTypeInfo"`
}

// RoomOccupancy is a room together with the dates of its latest active
// booking, if any.
type RoomOccupancy struct {
	ID         uint64 `json:"id"`
	RoomNumber int    `json:"roomNumber"`
	HotelID    uint64 `json:"hotel"`
	RoomTypeID uint64 `json:"roomType"`
	Status     string `json:"status"`
	StartDate  *Date  `json:"startDate"`
	EndDate    *Date  `json:"endDate"`
}
