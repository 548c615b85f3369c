package service

import "errors"

// ValidationError carries a message that is safe to return to the client
// with a 400 status.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// RoomConflictError lists the room numbers already booked for an
// overlapping stay.
type RoomConflictError struct{ RoomNumbers []int }

func (e *RoomConflictError) Error() string {
	return "Some rooms are already booked for the selected dates"
}

// ErrBookingAlreadyCancelled is returned when cancelling a booking twice.
var ErrBookingAlreadyCancelled = errors.New("booking already cancelled")
