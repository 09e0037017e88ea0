package cron

import (
	"context"
	"log/slog"
	"time"
)

// StaleSweeper force-closes attendance records left open on prior days.
type StaleSweeper interface {
	SweepStale(ctx context.Context) (int, error)
}

// AttendanceJobs wires the nightly reconciliation sweep into the scheduler.
// On-demand reconciliation at next check-in handles the common case; the
// sweep catches employees who never return.
type AttendanceJobs struct {
	sweeper StaleSweeper
}

func NewAttendanceJobs(sweeper StaleSweeper) *AttendanceJobs {
	return &AttendanceJobs{sweeper: sweeper}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("sweep_stale_attendances", interval, j.SweepStaleAttendances)
}

func (j *AttendanceJobs) SweepStaleAttendances(ctx context.Context) error {
	closed, err := j.sweeper.SweepStale(ctx)
	if err != nil {
		return err
	}
	if closed > 0 {
		slog.Info("Cron: Auto-closed stale attendances", "count", closed)
	}
	return nil
}
