package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stairs/gym-reports/internal/config"
	"stairs/gym-reports/internal/service"

	"go.uber.org/zap"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Scheduler fires the weekly report batch once a week at a fixed local time.
type Scheduler struct {
	weekday time.Weekday
	hour    int
	minute  int
	days    int

	reports service.ReportService
	logger  *zap.Logger
}

// New builds a scheduler from config. Weekday defaults to Sunday, time to
// 20:00.
func New(cfg config.ScheduleConfig, days int, reports service.ReportService, logger *zap.Logger) (*Scheduler, error) {
	weekday, ok := weekdays[strings.ToLower(cfg.Weekday)]
	if !ok {
		return nil, fmt.Errorf("invalid schedule weekday %q", cfg.Weekday)
	}

	var hour, minute int
	if _, err := fmt.Sscanf(cfg.Time, "%d:%d", &hour, &minute); err != nil {
		return nil, fmt.Errorf("invalid schedule time %q: %w", cfg.Time, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid schedule time %q", cfg.Time)
	}

	if days <= 0 {
		days = 7
	}

	return &Scheduler{
		weekday: weekday,
		hour:    hour,
		minute:  minute,
		days:    days,
		reports: reports,
		logger:  logger,
	}, nil
}

// Run blocks until ctx is cancelled, firing the weekly batch at every
// scheduled instant.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started",
		zap.String("weekday", s.weekday.String()),
		zap.String("time", fmt.Sprintf("%02d:%02d", s.hour, s.minute)))

	for {
		next := s.nextRun(time.Now())
		s.logger.Info("next weekly report run scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		}

		result := s.reports.GenerateWeeklyForAll(ctx, s.days)
		s.logger.Info("scheduled weekly run finished",
			zap.String("run_id", result.RunID),
			zap.Int("created", result.Created),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed))
	}
}

// nextRun returns the first scheduled instant strictly after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	daysAhead := (int(s.weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, daysAhead)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}
