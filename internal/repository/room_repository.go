package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// RoomRepo reads and updates physical rooms.  Status changes that affect the
// room type counter are only exposed as ...Tx methods so they always run
// inside the caller's transaction.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = "id, hotel_id, room_type_id, room_number, status, created_at, updated_at"

func listRooms(ctx context.Context, q dbtx, where string, args ...any) ([]model.Room, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+roomColumns+" FROM rooms "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomTypeID, &rm.RoomNumber, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// ListByHotel returns every room of the hotel with its type, ordered by room
// number then type.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.RoomWithType, error) {
	const q = `SELECT r.id, r.hotel_id, r.room_type_id, r.room_number, r.status, r.created_at, r.updated_at, rt.id, rt.type, rt.price_cents
FROM rooms r JOIN room_types rt ON rt.id = r.room_type_id
WHERE r.hotel_id = ? ORDER BY r.room_number, r.room_type_id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.RoomWithType{}
	for rows.Next() {
		var rw model.RoomWithType
		if err := rows.Scan(&rw.ID, &rw.HotelID, &rw.RoomTypeID, &rw.RoomNumber, &rw.Status, &rw.CreatedAt, &rw.UpdatedAt,
			&rw.RoomType.ID, &rw.RoomType.Type, &rw.RoomType.Price); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}

// ListByHotelAndType returns the rooms of one type of a hotel ordered by
// room number.
func (r *RoomRepo) ListByHotelAndType(ctx context.Context, hotelID, roomTypeID uint64) ([]model.Room, error) {
	return listRooms(ctx, r.db, "WHERE hotel_id = ? AND room_type_id = ? ORDER BY room_number", hotelID, roomTypeID)
}

// LockByIDsTx loads and row-locks the given rooms inside tx, ordered by id
// so concurrent bookings always lock in the same order.  Unknown ids are
// simply absent from the result.
func (r *RoomRepo) LockByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) ([]model.Room, error) {
	if len(ids) == 0 {
		return []model.Room{}, nil
	}
	return listRooms(ctx, tx, "WHERE id IN ("+placeholders(len(ids))+") ORDER BY id FOR UPDATE", idArgs(ids)...)
}

// GetByIDTx loads a room inside tx without locking it.
func (r *RoomRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
	rooms, err := listRooms(ctx, tx, "WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrRoomNotFound
	}
	return &rooms[0], nil
}

// GetForUpdateTx loads and locks a single room.
func (r *RoomRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
	rooms, err := r.LockByIDsTx(ctx, tx, []uint64{id})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrRoomNotFound
	}
	return &rooms[0], nil
}

// SetStatusTx sets the status of the given rooms.
func (r *RoomRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, ids []uint64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	args := append([]any{status}, idArgs(ids)...)
	_, err := tx.ExecContext(ctx, "UPDATE rooms SET status = ? WHERE id IN ("+placeholders(len(ids))+")", args...)
	return err
}

// ListOccupancy returns the rooms of a hotel and type, each with the dates
// of its latest active booking (by start date), ordered by room number.
func (r *RoomRepo) ListOccupancy(ctx context.Context, hotelID, roomTypeID uint64) ([]model.RoomOccupancy, error) {
	const q = `SELECT r.id, r.room_number, r.hotel_id, r.room_type_id, r.status, lb.start_date, lb.end_date
FROM rooms r
LEFT JOIN (
  SELECT br.room_id, b.start_date, b.end_date,
         ROW_NUMBER() OVER (PARTITION BY br.room_id ORDER BY b.start_date DESC, b.id DESC) AS rn
  FROM booking_rooms br JOIN bookings b ON b.id = br.booking_id
  WHERE b.status = 'booked'
) lb ON lb.room_id = r.id AND lb.rn = 1
WHERE r.hotel_id = ? AND r.room_type_id = ?
ORDER BY r.room_number`
	rows, err := r.db.QueryContext(ctx, q, hotelID, roomTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.RoomOccupancy{}
	for rows.Next() {
		var (
			o          model.RoomOccupancy
			start, end model.Date
		)
		if err := rows.Scan(&o.ID, &o.RoomNumber, &o.HotelID, &o.RoomTypeID, &o.Status, &start, &end); err != nil {
			return nil, err
		}
		if !start.IsZero() {
			o.StartDate, o.EndDate = &start, &end
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
