package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSplitStatements(t *testing.T) {
	script := `-- header
CREATE TABLE a (
  id INT
);

-- second
CREATE TABLE b (id INT);
SELECT 1`
	got := splitStatements(script)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "CREATE TABLE a (") || strings.HasSuffix(got[0], ";") {
		t.Fatalf("first statement = %q", got[0])
	}
	if got[2] != "SELECT 1" {
		t.Fatalf("trailing statement = %q", got[2])
	}
}

func TestEmbeddedSchemaCoversAllTables(t *testing.T) {
	stmts := splitStatements(schemaSQL)
	want := []string{"admins", "refresh_tokens", "hotels", "hotel_closed_dates", "room_types", "room_rates", "rooms", "bookings", "booking_rooms"}
	if len(stmts) != len(want) {
		t.Fatalf("statements = %d, want %d", len(stmts), len(want))
	}
	for i, table := range want {
		if !strings.Contains(stmts[i], "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Fatalf("statement %d does not create %s", i, table)
		}
	}
}

func TestMigrateStopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS admins").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS refresh_tokens").WillReturnError(errors.New("boom"))

	err = Migrate(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "schema statement 2") {
		t.Fatalf("Migrate error = %v, want statement 2 failure", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
