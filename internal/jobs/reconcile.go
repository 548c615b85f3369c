// Package jobs registers the periodic maintenance work.
package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/robfig/cron/v3"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
)

// Reconciler repairs room statuses and availability counters.
type Reconciler interface {
	Reconcile(ctx context.Context, today model.Date) (repository.ReconcileResult, error)
}

// RunReconcile runs one pass for today, bounded by a one minute timeout.
func RunReconcile(ctx context.Context, r Reconciler, logger *log.Logger) (repository.ReconcileResult, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	res, err := r.Reconcile(ctx, model.Today())
	if err != nil {
		logger.Errorf("reconcile: %v", err)
		return res, err
	}
	if res.ReleasedRooms > 0 {
		logger.Infof("reconcile: released %d rooms, recounted %d room types", res.ReleasedRooms, res.RecountedTypes)
	}
	return res, nil
}

// ScheduleReconcile adds the reconcile pass to c under schedule.  A schedule of
// "off" or "" leaves c untouched.
func ScheduleReconcile(c *cron.Cron, schedule string, r Reconciler, logger *log.Logger) error {
	if schedule == "" || schedule == "off" {
		logger.Info("reconcile job disabled")
		return nil
	}
	if _, err := c.AddFunc(schedule, func() {
		_, _ = RunReconcile(context.Background(), r, logger)
	}); err != nil {
		return err
	}
	logger.Infof("reconcile job scheduled: %s", schedule)
	return nil
}
