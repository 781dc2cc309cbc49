// Package report computes the rollup metrics stored on weekly and monthly
// progress reports.
package report

import (
	"math"

	"stairs/gym-reports/internal/domain"
)

// Per-period session targets used for the attendance rate.
const (
	WeeklyTargetSessions  = 3
	MonthlyTargetSessions = 12

	// MonthlyMinimumSessions is the floor below which no monthly report is
	// generated.
	MonthlyMinimumSessions = 3
)

// Metrics are the derived aggregates for one patient and period.
type Metrics struct {
	TotalSessions  int     `json:"totalSessions"`
	TotalMinutes   int     `json:"totalMinutes"`
	AttendanceRate float64 `json:"attendanceRate"`
	AverageRating  float64 `json:"averageRating"`
}

// Aggregate computes metrics over the workouts of one period. Workouts with a
// missing duration count as zero minutes. The attendance rate is capped at
// 100: over-performance is not reported above the target.
func Aggregate(workouts []domain.Workout, targetSessions int) Metrics {
	m := Metrics{TotalSessions: len(workouts)}

	ratingSum, rated := 0, 0
	for _, w := range workouts {
		if w.DurationMin > 0 {
			m.TotalMinutes += w.DurationMin
		}
		if s := w.Rating.Score(); s > 0 {
			ratingSum += s
			rated++
		}
	}

	if targetSessions > 0 && m.TotalSessions > 0 {
		rate := float64(m.TotalSessions) / float64(targetSessions) * 100
		m.AttendanceRate = round1(math.Min(rate, 100))
	}
	if rated > 0 {
		m.AverageRating = round1(float64(ratingSum) / float64(rated))
	}
	return m
}

// InsufficientData reports whether the period holds no sessions at all. The
// caller uses it to skip report generation entirely.
func (m Metrics) InsufficientData() bool { return m.TotalSessions == 0 }

// MeetsMinimum reports whether the period has at least min sessions.
func (m Metrics) MeetsMinimum(min int) bool { return m.TotalSessions >= min }

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
