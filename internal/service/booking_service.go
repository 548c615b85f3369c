// Package service holds the multi-table flows that must run in a single
// transaction, plus the helpers they share.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/queue"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
)

// MaxStayNights bounds a single booking.
const MaxStayNights = 365

// txOptions is used by every flow that checks bookings before changing
// rooms.  Under READ COMMITTED each locking read sees the latest committed
// rows instead of the snapshot taken by the first read of the transaction.
var txOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// BookingInput is a validated booking request.
type BookingInput struct {
	HotelID      uint64
	RoomTypeID   uint64
	RoomIDs      []uint64
	Quantity     int
	StartDate    model.Date
	EndDate      model.Date
	CustomerName string
	PhoneNumber  string
	AadharNumber string
}

// BookingResult is the created booking and the rooms it now holds.
type BookingResult struct {
	Booking     *model.Booking
	BookedRooms []model.Room
}

// CancelResult is the cancelled booking and its rooms after release.
type CancelResult struct {
	Booking        *model.Booking
	CancelledRooms []model.Room
	ReleasedRooms  int
}

// BookingService creates and cancels bookings.  Both flows lock the room
// type and the rooms involved so concurrent requests on the same rooms
// serialise; room status and the available_rooms counter change in the same
// transaction as the booking row.
type BookingService struct {
	db        *sql.DB
	hotels    *repository.HotelRepo
	roomTypes *repository.RoomTypeRepo
	rooms     *repository.RoomRepo
	bookings  *repository.BookingRepo
	events    Publisher
	log       *log.Logger
	now       func() time.Time
}

func NewBookingService(db *sql.DB, events Publisher, logger *log.Logger) *BookingService {
	return &BookingService{
		db:        db,
		hotels:    repository.NewHotelRepo(db),
		roomTypes: repository.NewRoomTypeRepo(db),
		rooms:     repository.NewRoomRepo(db),
		bookings:  repository.NewBookingRepo(db),
		events:    events,
		log:       logger,
		now:       time.Now,
	}
}

func (in *BookingInput) normalize() error {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return invalid("startDate and endDate are required")
	}
	if !in.StartDate.Before(in.EndDate) {
		return invalid("End date must be after start date")
	}
	if in.EndDate.Sub(in.StartDate.Time) > MaxStayNights*24*time.Hour {
		return invalid("Stay cannot exceed " + strconv.Itoa(MaxStayNights) + " nights")
	}
	seen := make(map[uint64]bool, len(in.RoomIDs))
	ids := in.RoomIDs[:0:0]
	for _, id := range in.RoomIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return invalid("at least one room is required")
	}
	in.RoomIDs = ids
	if in.Quantity == 0 {
		in.Quantity = len(ids)
	}
	if in.Quantity != len(ids) {
		return invalid("quantity must match the number of rooms")
	}
	return nil
}

// Book reserves the requested rooms for [StartDate, EndDate).
func (s *BookingService) Book(ctx context.Context, ownerID uint64, in BookingInput) (*BookingResult, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, txOptions)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	hotel, err := s.hotels.GetByIDTx(ctx, tx, in.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel.OwnerID != ownerID {
		return nil, repository.ErrHotelNotFound
	}
	if hotel.Status != model.HotelActive {
		return nil, invalid("Hotel is not accepting bookings")
	}
	for _, night := range model.Nights(in.StartDate, in.EndDate) {
		if hotel.IsClosedOn(night) {
			return nil, invalid("Hotel is closed on " + night.String())
		}
	}

	rt, err := s.roomTypes.GetForUpdateTx(ctx, tx, in.RoomTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomTypeNotFound) {
			return nil, invalid("Room type not found for this hotel")
		}
		return nil, err
	}
	if rt.HotelID != hotel.ID {
		return nil, invalid("Room type not found for this hotel")
	}

	rooms, err := s.rooms.LockByIDsTx(ctx, tx, in.RoomIDs)
	if err != nil {
		return nil, err
	}
	if len(rooms) != len(in.RoomIDs) {
		return nil, invalid("One or more rooms are invalid")
	}
	byID := make(map[uint64]model.Room, len(rooms))
	wasAvailable := 0
	for _, rm := range rooms {
		if rm.HotelID != hotel.ID || rm.RoomTypeID != rt.ID {
			return nil, invalid("One or more rooms are invalid")
		}
		if rm.Status == model.RoomMaintenance {
			return nil, invalid("Room " + strconv.Itoa(rm.RoomNumber) + " is under maintenance")
		}
		if rm.Status == model.RoomAvailable {
			wasAvailable++
		}
		byID[rm.ID] = rm
	}

	conflicts, err := s.bookings.OverlappingRoomsTx(ctx, tx, in.RoomIDs, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		nums := make([]int, 0, len(conflicts))
		for _, id := range conflicts {
			nums = append(nums, byID[id].RoomNumber)
		}
		return nil, &RoomConflictError{RoomNumbers: nums}
	}

	rates, err := s.roomTypes.RatesBetweenTx(ctx, tx, rt.ID, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	perRoom := QuoteStay(rt.Price, rates, in.StartDate, in.EndDate)

	b := &model.Booking{
		HotelID:      hotel.ID,
		RoomTypeID:   rt.ID,
		RoomIDs:      in.RoomIDs,
		Quantity:     in.Quantity,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		CustomerName: in.CustomerName,
		PhoneNumber:  in.PhoneNumber,
		AadharNumber: in.AadharNumber,
		Status:       model.BookingBooked,
		TotalAmount:  perRoom * model.Money(len(in.RoomIDs)),
	}
	if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.rooms.SetStatusTx(ctx, tx, in.RoomIDs, model.RoomBooked); err != nil {
		return nil, err
	}
	if err := s.roomTypes.AdjustAvailableTx(ctx, tx, rt.ID, -wasAvailable); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	for i := range rooms {
		rooms[i].Status = model.RoomBooked
	}
	s.publish(ctx, queue.EventBookingCreated, b, hotel, rt, rooms)
	return &BookingResult{Booking: b, BookedRooms: rooms}, nil
}

// Cancel marks a booking cancelled and releases every room no other active
// booking still needs.
func (s *BookingService) Cancel(ctx context.Context, ownerID, bookingID uint64) (*CancelResult, error) {
	tx, err := s.db.BeginTx(ctx, txOptions)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.GetByIDTx(ctx, tx, b.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return nil, repository.ErrBookingNotFound
		}
		return nil, err
	}
	if hotel.OwnerID != ownerID {
		return nil, repository.ErrBookingNotFound
	}
	if b.Status == model.BookingCancelled {
		return nil, ErrBookingAlreadyCancelled
	}

	rt, err := s.roomTypes.GetForUpdateTx(ctx, tx, b.RoomTypeID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.LockByIDsTx(ctx, tx, b.RoomIDs)
	if err != nil {
		return nil, err
	}
	held, err := s.bookings.RoomsHeldElsewhereTx(ctx, tx, b.RoomIDs, b.ID, model.NewDate(s.now()))
	if err != nil {
		return nil, err
	}
	stillHeld := make(map[uint64]bool, len(held))
	for _, id := range held {
		stillHeld[id] = true
	}
	var free []uint64
	for i, rm := range rooms {
		if rm.Status != model.RoomBooked || stillHeld[rm.ID] {
			continue
		}
		free = append(free, rm.ID)
		rooms[i].Status = model.RoomAvailable
	}

	if err := s.rooms.SetStatusTx(ctx, tx, free, model.RoomAvailable); err != nil {
		return nil, err
	}
	if err := s.roomTypes.AdjustAvailableTx(ctx, tx, rt.ID, len(free)); err != nil {
		return nil, err
	}
	at := s.now().UTC()
	if err := s.bookings.CancelTx(ctx, tx, b.ID, at); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrBookingAlreadyCancelled
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	b.Status = model.BookingCancelled
	b.CancelledAt = &at
	s.publish(ctx, queue.EventBookingCancelled, b, hotel, rt, rooms)
	return &CancelResult{Booking: b, CancelledRooms: rooms, ReleasedRooms: len(free)}, nil
}

// publish never fails the request; the booking is already committed.
func (s *BookingService) publish(ctx context.Context, typ string, b *model.Booking, h *model.Hotel, rt *model.RoomType, rooms []model.Room) {
	if s.events == nil {
		return
	}
	nums := make([]int, len(rooms))
	for i, rm := range rooms {
		nums[i] = rm.RoomNumber
	}
	ev := queue.BookingEvent{
		Type:             typ,
		BookingID:        b.ID,
		HotelID:          h.ID,
		OwnerID:          h.OwnerID,
		HotelName:        h.Name,
		RoomType:         rt.Type,
		RoomNumbers:      nums,
		Quantity:         b.Quantity,
		StartDate:        b.StartDate.String(),
		EndDate:          b.EndDate.String(),
		CustomerName:     b.CustomerName,
		TotalAmountCents: int64(b.TotalAmount),
		OccurredAt:       s.now().UTC().Format(time.RFC3339),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.events.Publish(pctx, ev); err != nil && s.log != nil {
		s.log.Warnf("publish %s for booking %d failed: %v", typ, b.ID, err)
	}
}
