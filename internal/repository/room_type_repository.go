package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// RoomTypeRepo manages room types, their per-date rates and the
// available_rooms counter.
type RoomTypeRepo struct {
	db *sql.DB
}

func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

const roomTypeColumns = "id, hotel_id, type, total_rooms, available_rooms, price_cents, created_at, updated_at"

func scanRoomType(row interface{ Scan(...any) error }) (*model.RoomType, error) {
	rt := new(model.RoomType)
	if err := row.Scan(&rt.ID, &rt.HotelID, &rt.Type, &rt.TotalRooms, &rt.AvailableRooms, &rt.Price, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return nil, err
	}
	rt.RatesByDate = []model.RoomRate{}
	return rt, nil
}

// CreateWithRooms inserts the room type and its rooms numbered
// 1..TotalRooms, all available, in one transaction.  The created rooms are
// attached to rt.Rooms.
func (r *RoomTypeRepo) CreateWithRooms(ctx context.Context, rt *model.RoomType) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rt.AvailableRooms = rt.TotalRooms
	res, err := tx.ExecContext(ctx,
		"INSERT INTO room_types (hotel_id, type, total_rooms, available_rooms, price_cents) VALUES (?, ?, ?, ?, ?)",
		rt.HotelID, rt.Type, rt.TotalRooms, rt.AvailableRooms, rt.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)

	if rt.TotalRooms > 0 {
		var sb strings.Builder
		sb.WriteString("INSERT INTO rooms (hotel_id, room_type_id, room_number, status) VALUES ")
		args := make([]any, 0, rt.TotalRooms*4)
		for n := 1; n <= rt.TotalRooms; n++ {
			if n > 1 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?)")
			args = append(args, rt.HotelID, rt.ID, n, model.RoomAvailable)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return err
		}
	}

	if err := tx.QueryRowContext(ctx, "SELECT created_at, updated_at FROM room_types WHERE id = ?", rt.ID).Scan(&rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return err
	}
	rooms, err := listRooms(ctx, tx, "WHERE room_type_id = ? ORDER BY room_number", rt.ID)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	rt.RatesByDate = []model.RoomRate{}
	rt.Rooms = rooms
	return nil
}

// GetByID loads a room type with its rates.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
	rt, err := scanRoomType(r.db.QueryRowContext(ctx, "SELECT "+roomTypeColumns+" FROM room_types WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	rates, err := r.ListRates(ctx, id)
	if err != nil {
		return nil, err
	}
	rt.RatesByDate = rates
	return rt, nil
}

// GetForUpdateTx locks the room type row so its available_rooms counter can
// be adjusted safely inside tx.  Rates are not loaded.
func (r *RoomTypeRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RoomType, error) {
	rt, err := scanRoomType(tx.QueryRowContext(ctx, "SELECT "+roomTypeColumns+" FROM room_types WHERE id = ? FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return rt, nil
}

// ListByHotel returns the hotel's room types ordered by id, with rates.
func (r *RoomTypeRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.RoomType, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+roomTypeColumns+" FROM room_types WHERE hotel_id = ? ORDER BY id", hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.RoomType{}
	byID := map[uint64]*model.RoomType{}
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
		byID[rt.ID] = rt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	rrows, err := r.db.QueryContext(ctx,
		"SELECT rr.room_type_id, rr.rate_date, rr.price_cents FROM room_rates rr JOIN room_types rt ON rt.id = rr.room_type_id WHERE rt.hotel_id = ? ORDER BY rr.room_type_id, rr.rate_date",
		hotelID)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()
	for rrows.Next() {
		var (
			typeID uint64
			rate   model.RoomRate
		)
		if err := rrows.Scan(&typeID, &rate.Date, &rate.Price); err != nil {
			return nil, err
		}
		if rt, ok := byID[typeID]; ok {
			rt.RatesByDate = append(rt.RatesByDate, rate)
		}
	}
	return out, rrows.Err()
}

// ListRates returns the date overrides of a room type ordered by date.
func (r *RoomTypeRepo) ListRates(ctx context.Context, roomTypeID uint64) ([]model.RoomRate, error) {
	return listRates(ctx, r.db, "SELECT rate_date, price_cents FROM room_rates WHERE room_type_id = ? ORDER BY rate_date", roomTypeID)
}

// RatesBetweenTx returns the overrides falling on nights of [start, end).
func (r *RoomTypeRepo) RatesBetweenTx(ctx context.Context, tx *sql.Tx, roomTypeID uint64, start, end model.Date) ([]model.RoomRate, error) {
	return listRates(ctx, tx,
		"SELECT rate_date, price_cents FROM room_rates WHERE room_type_id = ? AND rate_date >= ? AND rate_date < ? ORDER BY rate_date",
		roomTypeID, start, end)
}

func listRates(ctx context.Context, q dbtx, query string, args ...any) ([]model.RoomRate, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.RoomRate{}
	for rows.Next() {
		var rate model.RoomRate
		if err := rows.Scan(&rate.Date, &rate.Price); err != nil {
			return nil, err
		}
		out = append(out, rate)
	}
	return out, rows.Err()
}

// UpsertRate sets the price of a room type for one day, replacing any
// existing override for that day.
func (r *RoomTypeRepo) UpsertRate(ctx context.Context, roomTypeID uint64, day model.Date, price model.Money) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO room_rates (room_type_id, rate_date, price_cents) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE price_cents = VALUES(price_cents)",
		roomTypeID, day, price)
	return err
}

// AdjustAvailableTx moves available_rooms by delta, clamped to
// [0, total_rooms].
func (r *RoomTypeRepo) AdjustAvailableTx(ctx context.Context, tx *sql.Tx, id uint64, delta int) error {
	if delta == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"UPDATE room_types SET available_rooms = LEAST(total_rooms, GREATEST(0, available_rooms + ?)) WHERE id = ?",
		delta, id)
	return err
}
