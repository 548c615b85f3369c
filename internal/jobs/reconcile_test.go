package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/robfig/cron/v3"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
)

type fakeReconciler struct {
	calls int
	day   model.Date
	err   error
}

func (f *fakeReconciler) Reconcile(_ context.Context, today model.Date) (repository.ReconcileResult, error) {
	f.calls++
	f.day = today
	return repository.ReconcileResult{ReleasedRooms: 2, RecountedTypes: 1}, f.err
}

func TestRunReconcileUsesToday(t *testing.T) {
	f := &fakeReconciler{}
	res, err := RunReconcile(context.Background(), f, log.New("test"))
	if err != nil {
		t.Fatalf("RunReconcile: %v", err)
	}
	if res.ReleasedRooms != 2 || !f.day.Equal(model.Today().Time) {
		t.Fatalf("res = %+v day = %s", res, f.day)
	}
}

func TestRunReconcileReturnsErrors(t *testing.T) {
	f := &fakeReconciler{err: errors.New("deadlock")}
	if _, err := RunReconcile(context.Background(), f, log.New("test")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestScheduleReconcile(t *testing.T) {
	c := cron.New()
	f := &fakeReconciler{}
	if err := ScheduleReconcile(c, "off", f, log.New("test")); err != nil {
		t.Fatalf("off: %v", err)
	}
	if len(c.Entries()) != 0 {
		t.Fatalf("disabled job was scheduled")
	}
	if err := ScheduleReconcile(c, "@every 15m", f, log.New("test")); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(c.Entries()))
	}
	if err := ScheduleReconcile(c, "not a schedule", f, log.New("test")); err == nil {
		t.Fatalf("invalid schedule accepted")
	}
}
