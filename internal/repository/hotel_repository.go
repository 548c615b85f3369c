// Hotels and their closed dates.  Every hotel belongs to the admin who
// created it; the owner-scoped lookups are what the dashboard uses.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// HotelRepo encapsulates all database queries related to hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// DB exposes the pool so services can open transactions spanning several
// repositories.
func (r *HotelRepo) DB() *sql.DB { return r.db }

const hotelColumns = "id, owner_id, name, location, image, status, created_at, updated_at"

func scanHotel(row interface{ Scan(...any) error }) (*model.Hotel, error) {
	h := new(model.Hotel)
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Location, &h.Image, &h.Status, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	h.ClosedDates = []model.Date{}
	return h, nil
}

// Create inserts a hotel and reads back the generated id, status default
// and timestamps.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	if h.Status == "" {
		h.Status = model.HotelActive
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO hotels (owner_id, name, location, image, status) VALUES (?, ?, ?, ?, ?)",
		h.OwnerID, h.Name, h.Location, h.Image, h.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	if err := r.db.QueryRowContext(ctx, "SELECT created_at, updated_at FROM hotels WHERE id = ?", h.ID).Scan(&h.CreatedAt, &h.UpdatedAt); err != nil {
		return err
	}
	h.ClosedDates = []model.Date{}
	return nil
}

// GetByIDAndOwner fetches a hotel with its closed dates, but only if it
// belongs to ownerID.  Missing and foreign hotels both yield
// ErrHotelNotFound.
func (r *HotelRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Hotel, error) {
	h, err := r.getTx(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != ownerID {
		return nil, ErrHotelNotFound
	}
	return h, nil
}

// GetByIDTx loads a hotel with its closed dates inside tx.
func (r *HotelRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Hotel, error) {
	return r.getTx(ctx, tx, id)
}

func (r *HotelRepo) getTx(ctx context.Context, q dbtx, id uint64) (*model.Hotel, error) {
	h, err := scanHotel(q.QueryRowContext(ctx, "SELECT "+hotelColumns+" FROM hotels WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	rows, err := q.QueryContext(ctx, "SELECT closed_on FROM hotel_closed_dates WHERE hotel_id = ? ORDER BY closed_on", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d model.Date
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		h.ClosedDates = append(h.ClosedDates, d)
	}
	return h, rows.Err()
}

// OwnerOf returns the owner id of a hotel.
func (r *HotelRepo) OwnerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM hotels WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrHotelNotFound
	}
	return owner, err
}

// ListByOwner returns the owner's hotels ordered by id, each with its
// closed dates.
func (r *HotelRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+hotelColumns+" FROM hotels WHERE owner_id = ? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Hotel{}
	byID := map[uint64]*model.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
		byID[h.ID] = h
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	drows, err := r.db.QueryContext(ctx,
		"SELECT d.hotel_id, d.closed_on FROM hotel_closed_dates d JOIN hotels h ON h.id = d.hotel_id WHERE h.owner_id = ? ORDER BY d.hotel_id, d.closed_on",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer drows.Close()
	for drows.Next() {
		var (
			hotelID uint64
			d       model.Date
		)
		if err := drows.Scan(&hotelID, &d); err != nil {
			return nil, err
		}
		if h, ok := byID[hotelID]; ok {
			h.ClosedDates = append(h.ClosedDates, d)
		}
	}
	return out, drows.Err()
}

// UpdateStatus sets the status of an owned hotel.
func (r *HotelRepo) UpdateStatus(ctx context.Context, id, ownerID uint64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE hotels SET status = ? WHERE id = ? AND owner_id = ?", status, id, ownerID)
	if err != nil {
		return err
	}
	// MySQL reports 0 affected rows when the value is unchanged, so only
	// treat it as missing when the hotel really is not there.
	if n, _ := res.RowsAffected(); n == 0 {
		if owner, err := r.OwnerOf(ctx, id); err != nil || owner != ownerID {
			return ErrHotelNotFound
		}
	}
	return nil
}

// AddClosedDates merges dates into the hotel's closed set.  Days already
// present are ignored.
func (r *HotelRepo) AddClosedDates(ctx context.Context, hotelID uint64, dates []model.Date) error {
	if len(dates) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("INSERT IGNORE INTO hotel_closed_dates (hotel_id, closed_on) VALUES ")
	args := make([]any, 0, len(dates)*2)
	for i, d := range dates {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?)")
		args = append(args, hotelID, d)
	}
	_, err := r.db.ExecContext(ctx, sb.String(), args...)
	return err
}
