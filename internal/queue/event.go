// Package queue defines the booking events exchanged over the message broker
// and the consumer that fans them out to sinks.
package queue

import "errors"

// QueueName is the durable RabbitMQ queue carrying booking events.
const QueueName = "booking.events"

// Event types.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published after a booking is created or cancelled.  It
// contains enough information for downstream consumers to log and notify
// without querying the primary database.
type BookingEvent struct {
	Type             string `json:"type"`
	BookingID        uint64 `json:"booking_id"`
	HotelID          uint64 `json:"hotel_id"`
	OwnerID          uint64 `json:"owner_id"`
	HotelName        string `json:"hotel_name"`
	RoomType         string `json:"room_type"`
	RoomNumbers      []int  `json:"room_numbers"`
	Quantity         int    `json:"quantity"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	CustomerName     string `json:"customer_name"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	OccurredAt       string `json:"occurred_at"`
}

// Sink receives decoded booking events.
type Sink interface {
	HandleBookingEvent(ev BookingEvent) error
}

// Deliver hands ev to every sink and joins their errors.  A failing sink
// does not stop delivery to the others.
func Deliver(ev BookingEvent, sinks ...Sink) error {
	var errs []error
	for _, s := range sinks {
		if s == nil {
			continue
		}
		if err := s.HandleBookingEvent(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
