package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
)

// RoomService toggles rooms in and out of maintenance.
type RoomService struct {
	db        *sql.DB
	hotels    *repository.HotelRepo
	roomTypes *repository.RoomTypeRepo
	rooms     *repository.RoomRepo
}

func NewRoomService(db *sql.DB) *RoomService {
	return &RoomService{
		db:        db,
		hotels:    repository.NewHotelRepo(db),
		roomTypes: repository.NewRoomTypeRepo(db),
		rooms:     repository.NewRoomRepo(db),
	}
}

// SetStatus moves a room between available and maintenance.  Booked rooms
// are left to the booking flows and yield repository.ErrConflict.
func (s *RoomService) SetStatus(ctx context.Context, ownerID, roomID uint64, status string) (*model.Room, error) {
	if status != model.RoomAvailable && status != model.RoomMaintenance {
		return nil, invalid("status must be available or maintenance")
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

	// Locks follow the booking flows: room type first, then the room.
	found, err := s.rooms.GetByIDTx(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.GetByIDTx(ctx, tx, found.HotelID)
	if err != nil || hotel.OwnerID != ownerID {
		if err == nil || errors.Is(err, repository.ErrHotelNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, err
	}
	if _, err := s.roomTypes.GetForUpdateTx(ctx, tx, found.RoomTypeID); err != nil {
		return nil, err
	}
	rm, err := s.rooms.GetForUpdateTx(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	if rm.Status == status {
		return rm, nil
	}
	if rm.Status == model.RoomBooked {
		return nil, repository.ErrConflict
	}
	if err := s.rooms.SetStatusTx(ctx, tx, []uint64{rm.ID}, status); err != nil {
		return nil, err
	}
	delta := 1
	if status == model.RoomMaintenance {
		delta = -1
	}
	if err := s.roomTypes.AdjustAvailableTx(ctx, tx, rm.RoomTypeID, delta); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	rm.Status = status
	return rm, nil
}
