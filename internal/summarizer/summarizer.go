package summarizer

import (
	"context"
	"fmt"
	"time"

	"stairs/gym-reports/internal/domain"
	"stairs/gym-reports/internal/report"
)

// WeeklyFacts carries everything the summarizer may mention in a weekly
// narrative. Workouts are the period's sessions in date order; Assessment is
// the most recent assessment from the period, if any.
type WeeklyFacts struct {
	PatientName string
	WeekStart   time.Time
	WeekEnd     time.Time
	Metrics     report.Metrics
	Workouts    []domain.Workout
	Assessment  *domain.Assessment
}

// MonthlyFacts carries the inputs for a monthly narrative. WeeklySummaries
// are the month's stored weekly reports, oldest first.
type MonthlyFacts struct {
	PatientName     string
	MonthStart      time.Time
	MonthEnd        time.Time
	Metrics         report.Metrics
	Workouts        []domain.Workout
	WeeklySummaries []domain.WeeklyReport
	Measurements    domain.Measurements
}

// WeeklySummary is the narrative portion of a weekly report.
type WeeklySummary struct {
	Summary         string `json:"summary"`
	Improvements    string `json:"improvements"`
	Concerns        string `json:"concerns"`
	Recommendations string `json:"recommendations"`
}

// MonthlySummary is the narrative portion of a monthly report.
type MonthlySummary struct {
	Summary         string `json:"summary"`
	Achievements    string `json:"achievements"`
	Challenges      string `json:"challenges"`
	NextMonthFocus  string `json:"next_month_focus"`
	TrainerComments string `json:"trainer_comments"`
}

// Summarizer produces report narratives. Implementations must not fail for
// lack of creativity: when generation is impossible they should return the
// metric-based fallback rather than an error, reserving errors for callers
// that want to know generation degraded.
type Summarizer interface {
	Weekly(ctx context.Context, facts WeeklyFacts) (WeeklySummary, error)
	Monthly(ctx context.Context, facts MonthlyFacts) (MonthlySummary, error)
}

// FallbackWeekly builds the deterministic weekly narrative used when no
// language model is configured or the call fails.
func FallbackWeekly(facts WeeklyFacts) WeeklySummary {
	summary := fmt.Sprintf("%s completed %d sessions this week (%d minutes total).",
		facts.PatientName, facts.Metrics.TotalSessions, facts.Metrics.TotalMinutes)
	if facts.Assessment != nil && facts.Assessment.Date != nil {
		summary += fmt.Sprintf(" Assessment conducted on %s.", facts.Assessment.Date.Format("2006-01-02"))
	}
	return WeeklySummary{
		Summary:         summary,
		Improvements:    "See individual workout logs",
		Concerns:        "None noted",
		Recommendations: "Continue with current program",
	}
}

// FallbackMonthly builds the deterministic monthly narrative.
func FallbackMonthly(facts MonthlyFacts) MonthlySummary {
	return MonthlySummary{
		Summary: fmt.Sprintf("%s completed %d sessions this month (%d minutes total).",
			facts.PatientName, facts.Metrics.TotalSessions, facts.Metrics.TotalMinutes),
		Achievements:    "See individual workout logs for details.",
		Challenges:      "Unable to generate AI summary",
		NextMonthFocus:  "Continue with current program",
		TrainerComments: "Monthly assessment pending",
	}
}

// Static is a Summarizer that always returns the fallback narratives. Used
// when no model API key is configured.
type Static struct{}

func (Static) Weekly(_ context.Context, facts WeeklyFacts) (WeeklySummary, error) {
	return FallbackWeekly(facts), nil
}

func (Static) Monthly(_ context.Context, facts MonthlyFacts) (MonthlySummary, error) {
	return FallbackMonthly(facts), nil
}
