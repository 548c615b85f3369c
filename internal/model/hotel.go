package model

import "time"

// Hotel status values.
const (
	HotelActive   = "active"
	HotelInactive = "inactive"
)

// Hotel is a property owned by the admin who created it.  ClosedDates is a
// set: adding an existing day is a no-op.
type Hotel struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"createdBy"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	ClosedDates []Date    `json:"closedDates"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsClosedOn reports whether d is one of the hotel's closed dates.
func (h *Hotel) IsClosedOn(d Date) bool {
	for _, c := range h.ClosedDates {
		if c.Equal(d.Time) {
			return true
		}
	}
	return false
}

// ValidHotelStatus reports whether s is a known hotel status.
func ValidHotelStatus(s string) bool { return s == HotelActive || s == HotelInactive }
