package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func day(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	return d
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(3); got != "?,?,?" {
		t.Fatalf("placeholders(3) = %q", got)
	}
	if got := placeholders(0); got != "" {
		t.Fatalf("placeholders(0) = %q", got)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !isDuplicateKey(dup) {
		t.Fatalf("wrapped 1062 not detected")
	}
	if isDuplicateKey(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("1452 reported as duplicate")
	}
	if isDuplicateKey(errors.New("1062")) {
		t.Fatalf("plain error reported as duplicate")
	}
}

func TestAdminRepoCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admins (email, password_hash)")).
		WithArgs("owner@example.com", sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1062})

	_, err := repo.Create(context.Background(), "  Owner@Example.com ", "secret1", 4)
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestHotelRepoGetByIDAndOwnerHidesForeignHotels(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHotelRepo(db)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM hotels WHERE id = ?")).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "image", "status", "created_at", "updated_at"}).
			AddRow(7, 2, "Sea Breeze", "Goa", "", "active", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM hotel_closed_dates WHERE hotel_id = ?")).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"closed_on"}).AddRow(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))

	_, err := repo.GetByIDAndOwner(context.Background(), 7, 1)
	if !errors.Is(err, ErrHotelNotFound) {
		t.Fatalf("err = %v, want ErrHotelNotFound", err)
	}
}

func TestHotelRepoGetByIDAndOwnerLoadsClosedDates(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHotelRepo(db)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM hotels WHERE id = ?")).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "image", "status", "created_at", "updated_at"}).
			AddRow(7, 1, "Sea Breeze", "Goa", "/uploads/a.png", "active", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM hotel_closed_dates WHERE hotel_id = ?")).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"closed_on"}).
			AddRow(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))

	h, err := repo.GetByIDAndOwner(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("GetByIDAndOwner: %v", err)
	}
	if len(h.ClosedDates) != 2 || h.ClosedDates[1].String() != "2025-12-31" {
		t.Fatalf("closed dates = %v", h.ClosedDates)
	}
}

func TestHotelRepoAddClosedDatesIgnoresDuplicates(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHotelRepo(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT IGNORE INTO hotel_closed_dates (hotel_id, closed_on) VALUES (?, ?), (?, ?)")).
		WithArgs(3, "2025-01-01", 3, "2025-01-02").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddClosedDates(context.Background(), 3, []model.Date{day(t, "2025-01-01"), day(t, "2025-01-02")})
	if err != nil {
		t.Fatalf("AddClosedDates: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestBookingRepoOverlapQueryUsesHalfOpenRange(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("b.status = 'booked' AND b.start_date < ? AND b.end_date > ? ORDER BY br.room_id FOR SHARE")).
		WithArgs(11, 12, "2025-03-05", "2025-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(12))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	got, err := repo.OverlappingRoomsTx(context.Background(), tx, []uint64{11, 12}, day(t, "2025-03-01"), day(t, "2025-03-05"))
	if err != nil {
		t.Fatalf("OverlappingRoomsTx: %v", err)
	}
	if len(got) != 1 || got[0] != 12 {
		t.Fatalf("conflicts = %v, want [12]", got)
	}
}

func TestBookingRepoCancelTxAlreadyCancelled(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = 'cancelled'")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, _ := db.Begin()
	if err := repo.CancelTx(context.Background(), tx, 5, time.Now()); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestRevenueRepoDailyRevenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRevenueRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY b.start_date")).
		WithArgs(1, "2025-01-01", "2025-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"start_date", "sum"}).
			AddRow(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), 500000).
			AddRow(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 120050))

	got, err := repo.DailyRevenue(context.Background(), 1, day(t, "2025-01-01"), day(t, "2025-03-15"))
	if err != nil {
		t.Fatalf("DailyRevenue: %v", err)
	}
	if len(got) != 2 || got[0].Date.String() != "2025-01-04" || got[1].Revenue != 120050 {
		t.Fatalf("daily = %+v", got)
	}
}

func TestRevenueRepoReportsChargedNightlyRate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRevenueRepo(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(total_amount_cents), 0), COUNT(*) FROM bookings")).
		WithArgs(3, "2025-03-01", "2025-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(3200000, 1))
	// Two rooms for three nights, one of them at an override rate.
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY b.start_date, b.id")).
		WithArgs(3, "2025-03-01", "2025-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "customer_name", "type", "quantity", "total_amount_cents", "start_date", "end_date"}).
			AddRow(40, "Sea Breeze", "Asha Rao", "Deluxe", 2, 3200000,
				time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)))

	got, err := repo.HotelRevenue(context.Background(), 3, day(t, "2025-03-01"), day(t, "2025-03-31"))
	if err != nil {
		t.Fatalf("HotelRevenue: %v", err)
	}
	if got.TotalRevenue != 3200000 || len(got.Details) != 1 {
		t.Fatalf("revenue = %+v", got)
	}
	l := got.Details[0]
	if l.PricePerRoom != 533333 {
		t.Fatalf("pricePerRoom = %d, want 533333", l.PricePerRoom)
	}
	if want := l.PricePerRoom * model.Money(l.Quantity*3); l.BookingRevenue-want >= model.Money(l.Quantity*3) {
		t.Fatalf("pricePerRoom %d does not account for bookingRevenue %d", l.PricePerRoom, l.BookingRevenue)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestChargedNightlyRateIgnoresEmptyStays(t *testing.T) {
	if got := chargedNightlyRate(1000, 0, 3); got != 0 {
		t.Fatalf("zero quantity = %d", got)
	}
	if got := chargedNightlyRate(1000, 2, 0); got != 0 {
		t.Fatalf("zero nights = %d", got)
	}
}

func TestReconcileRepoCommitsBothSteps(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReconcileRepo(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms r SET r.status = 'available'")).
		WithArgs("2025-06-01").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE room_types rt SET rt.available_rooms")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	res, err := repo.Reconcile(context.Background(), day(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if res.ReleasedRooms != 3 || res.RecountedTypes != 2 {
		t.Fatalf("result = %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReconcileRepoRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReconcileRepo(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms r SET r.status = 'available'")).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	if _, err := repo.Reconcile(context.Background(), day(t, "2025-06-01")); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
