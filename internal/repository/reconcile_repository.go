package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// ReconcileResult reports what a reconcile pass changed.
type ReconcileResult struct {
	ReleasedRooms  int64 `json:"releasedRooms"`
	RecountedTypes int64 `json:"recountedTypes"`
}

// ReconcileRepo repairs room statuses and availability counters after stays
// end or after manual edits to the database.
type ReconcileRepo struct {
	db *sql.DB
}

func NewReconcileRepo(db *sql.DB) *ReconcileRepo { return &ReconcileRepo{db: db} }

// Reconcile releases booked rooms that no active booking needs on or after
// today and recomputes every available_rooms counter from room statuses,
// in one transaction.
func (r *ReconcileRepo) Reconcile(ctx context.Context, today model.Date) (ReconcileResult, error) {
	var out ReconcileResult
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return out, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE rooms r SET r.status = 'available'
WHERE r.status = 'booked' AND NOT EXISTS (
  SELECT 1 FROM booking_rooms br JOIN bookings b ON b.id = br.booking_id
  WHERE br.room_id = r.id AND b.status = 'booked' AND b.end_date > ?)`, today)
	if err != nil {
		return out, err
	}
	out.ReleasedRooms, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `UPDATE room_types rt SET rt.available_rooms = (
  SELECT COUNT(*) FROM rooms r WHERE r.room_type_id = rt.id AND r.status = 'available')`)
	if err != nil {
		return out, err
	}
	out.RecountedTypes, _ = res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return out, err
	}
	committed = true
	return out, nil
}
