package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// BookingRepo provides persistence for bookings and the rooms they hold.
// Rooms held by a booking are stored in booking_rooms.  Methods that take a
// *sql.Tx leave commit or rollback to the caller.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = "id, hotel_id, room_type_id, quantity, start_date, end_date, customer_name, phone_number, aadhar_number, status, total_amount_cents, cancelled_at, created_at, updated_at"

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	var cancelled sql.NullTime
	if err := row.Scan(&b.ID, &b.HotelID, &b.RoomTypeID, &b.Quantity, &b.StartDate, &b.EndDate,
		&b.CustomerName, &b.PhoneNumber, &b.AadharNumber, &b.Status, &b.TotalAmount,
		&cancelled, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if cancelled.Valid {
		t := cancelled.Time
		b.CancelledAt = &t
	}
	return nil
}

// CreateTx inserts the booking and its booking_rooms rows inside tx and
// populates the generated id and timestamps on b.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	if b.Status == "" {
		b.Status = model.BookingBooked
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (hotel_id, room_type_id, quantity, start_date, end_date, customer_name, phone_number, aadhar_number, status, total_amount_cents) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		b.HotelID, b.RoomTypeID, b.Quantity, b.StartDate, b.EndDate, b.CustomerName, b.PhoneNumber, b.AadharNumber, b.Status, b.TotalAmount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	if len(b.RoomIDs) > 0 {
		var sb strings.Builder
		sb.WriteString("INSERT INTO booking_rooms (booking_id, room_id) VALUES ")
		args := make([]any, 0, len(b.RoomIDs)*2)
		for i, roomID := range b.RoomIDs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?)")
			args = append(args, b.ID, roomID)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return err
		}
	}
	return tx.QueryRowContext(ctx, "SELECT created_at, updated_at FROM bookings WHERE id = ?", b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// OverlappingRoomsTx returns the subset of roomIDs held by an active booking
// whose nights intersect [start, end).  It is a locking read so it sees
// bookings committed after tx took its snapshot.
func (r *BookingRepo) OverlappingRoomsTx(ctx context.Context, tx *sql.Tx, roomIDs []uint64, start, end model.Date) ([]uint64, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	q := "SELECT DISTINCT br.room_id FROM booking_rooms br JOIN bookings b ON b.id = br.booking_id " +
		"WHERE br.room_id IN (" + placeholders(len(roomIDs)) + ") AND b.status = 'booked' AND b.start_date < ? AND b.end_date > ? ORDER BY br.room_id FOR SHARE"
	args := append(idArgs(roomIDs), end, start)
	return queryIDs(ctx, tx, q, args...)
}

// RoomsHeldElsewhereTx returns the subset of roomIDs that another active
// booking still needs on or after day.  Like OverlappingRoomsTx it is a
// locking read.
func (r *BookingRepo) RoomsHeldElsewhereTx(ctx context.Context, tx *sql.Tx, roomIDs []uint64, exceptBookingID uint64, day model.Date) ([]uint64, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	q := "SELECT DISTINCT br.room_id FROM booking_rooms br JOIN bookings b ON b.id = br.booking_id " +
		"WHERE br.room_id IN (" + placeholders(len(roomIDs)) + ") AND b.status = 'booked' AND b.id <> ? AND b.end_date > ? ORDER BY br.room_id FOR SHARE"
	args := append(idArgs(roomIDs), exceptBookingID, day)
	return queryIDs(ctx, tx, q, args...)
}

func queryIDs(ctx context.Context, q dbtx, query string, args ...any) ([]uint64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// GetForUpdateTx loads and locks a booking together with its room ids.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	b := new(model.Booking)
	if err := scanBooking(tx.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ? FOR UPDATE", id), b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	ids, err := queryIDs(ctx, tx, "SELECT room_id FROM booking_rooms WHERE booking_id = ? ORDER BY room_id", id)
	if err != nil {
		return nil, err
	}
	b.RoomIDs = ids
	return b, nil
}

// CancelTx marks an active booking cancelled.  The booking and its room
// links are kept for history and revenue audits.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = 'cancelled', cancelled_at = ? WHERE id = ? AND status = 'booked'",
		at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// ListByOwner returns every booking of the owner's hotels, newest stay
// first, each with its hotel, room type and rooms.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.BookingDetail, error) {
	const q = `SELECT b.id, b.hotel_id, b.room_type_id, b.quantity, b.start_date, b.end_date, b.customer_name, b.phone_number, b.aadhar_number, b.status, b.total_amount_cents, b.cancelled_at, b.created_at, b.updated_at,
       h.name, h.location, rt.type, rt.price_cents
FROM bookings b
JOIN hotels h ON h.id = b.hotel_id
JOIN room_types rt ON rt.id = b.room_type_id
WHERE h.owner_id = ?
ORDER BY b.start_date DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.BookingDetail{}
	byID := map[uint64]*model.BookingDetail{}
	for rows.Next() {
		d := new(model.BookingDetail)
		var cancelled sql.NullTime
		if err := rows.Scan(&d.ID, &d.HotelID, &d.RoomTypeID, &d.Quantity, &d.StartDate, &d.EndDate,
			&d.CustomerName, &d.PhoneNumber, &d.AadharNumber, &d.Status, &d.TotalAmount,
			&cancelled, &d.CreatedAt, &d.UpdatedAt,
			&d.HotelName, &d.HotelLocation, &d.RoomTypeName, &d.RoomPrice); err != nil {
			return nil, err
		}
		if cancelled.Valid {
			t := cancelled.Time
			d.CancelledAt = &t
		}
		d.RoomIDs = []uint64{}
		d.Rooms = []model.Room{}
		out = append(out, d)
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	const rq = `SELECT br.booking_id, r.id, r.hotel_id, r.room_type_id, r.room_number, r.status, r.created_at, r.updated_at
FROM booking_rooms br
JOIN rooms r ON r.id = br.room_id
JOIN bookings b ON b.id = br.booking_id
JOIN hotels h ON h.id = b.hotel_id
WHERE h.owner_id = ?
ORDER BY br.booking_id, r.room_number`
	rrows, err := r.db.QueryContext(ctx, rq, ownerID)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()
	for rrows.Next() {
		var (
			bookingID uint64
			rm        model.Room
		)
		if err := rrows.Scan(&bookingID, &rm.ID, &rm.HotelID, &rm.RoomTypeID, &rm.RoomNumber, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		if d, ok := byID[bookingID]; ok {
			d.RoomIDs = append(d.RoomIDs, rm.ID)
			d.Rooms = append(d.Rooms, rm)
		}
	}
	return out, rrows.Err()
}
