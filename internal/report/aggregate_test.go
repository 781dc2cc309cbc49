package report

import (
	"testing"
	"time"

	"stairs/gym-reports/internal/domain"

	"github.com/stretchr/testify/assert"
)

func workout(minutes int, rating domain.SessionRating) domain.Workout {
	d := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	return domain.Workout{Date: &d, DurationMin: minutes, Rating: rating}
}

func TestAggregate_Totals(t *testing.T) {
	m := Aggregate([]domain.Workout{
		workout(60, domain.RatingGood),
		workout(45, domain.RatingExcellent),
		workout(30, ""),
	}, WeeklyTargetSessions)

	assert.Equal(t, 3, m.TotalSessions)
	assert.Equal(t, 135, m.TotalMinutes)
}

func TestAggregate_WeeklyAttendance(t *testing.T) {
	m := Aggregate([]domain.Workout{
		workout(60, ""),
		workout(60, ""),
	}, WeeklyTargetSessions)

	// 2 of 3 target sessions.
	assert.InDelta(t, 66.7, m.AttendanceRate, 0.001)
}

func TestAggregate_AttendanceCappedAt100(t *testing.T) {
	workouts := make([]domain.Workout, 5)
	for i := range workouts {
		workouts[i] = workout(30, "")
	}
	m := Aggregate(workouts, WeeklyTargetSessions)

	assert.Equal(t, 100.0, m.AttendanceRate)
}

func TestAggregate_AttendanceRange(t *testing.T) {
	for n := 0; n <= 20; n++ {
		workouts := make([]domain.Workout, n)
		for i := range workouts {
			workouts[i] = workout(30, "")
		}
		m := Aggregate(workouts, MonthlyTargetSessions)
		assert.GreaterOrEqual(t, m.AttendanceRate, 0.0)
		assert.LessOrEqual(t, m.AttendanceRate, 100.0)
	}
}

func TestAggregate_AverageRatingSkipsUnrated(t *testing.T) {
	m := Aggregate([]domain.Workout{
		workout(30, domain.RatingExcellent), // 5
		workout(30, domain.RatingPoor),      // 1
		workout(30, ""),                     // unrated, excluded
	}, WeeklyTargetSessions)

	assert.Equal(t, 3.0, m.AverageRating)
}

func TestAggregate_RatingScale(t *testing.T) {
	m := Aggregate([]domain.Workout{
		workout(30, domain.RatingExcellent),    // 5
		workout(30, domain.RatingGood),         // 4
		workout(30, domain.RatingAverage),      // 3
		workout(30, domain.RatingBelowAverage), // 2
		workout(30, domain.RatingPoor),         // 1
	}, WeeklyTargetSessions)

	assert.Equal(t, 3.0, m.AverageRating)
}

func TestAggregate_UnknownRatingExcluded(t *testing.T) {
	m := Aggregate([]domain.Workout{
		workout(30, "Superb"),
		workout(30, domain.RatingGood),
	}, WeeklyTargetSessions)

	assert.Equal(t, 4.0, m.AverageRating)
}

func TestAggregate_NegativeDurationIgnored(t *testing.T) {
	m := Aggregate([]domain.Workout{
		workout(-10, ""),
		workout(60, ""),
	}, WeeklyTargetSessions)

	assert.Equal(t, 60, m.TotalMinutes)
}

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil, WeeklyTargetSessions)

	assert.True(t, m.InsufficientData())
	assert.Equal(t, 0.0, m.AttendanceRate)
	assert.Equal(t, 0.0, m.AverageRating)
}

func TestMetrics_MeetsMinimum(t *testing.T) {
	assert.False(t, Metrics{TotalSessions: 2}.MeetsMinimum(MonthlyMinimumSessions))
	assert.True(t, Metrics{TotalSessions: 3}.MeetsMinimum(MonthlyMinimumSessions))
}

func TestAggregate_RoundsToOneDecimal(t *testing.T) {
	// 1 of 12 target sessions: 8.333... rounds to 8.3.
	m := Aggregate([]domain.Workout{workout(30, "")}, MonthlyTargetSessions)
	assert.Equal(t, 8.3, m.AttendanceRate)
}
