package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stairs/gym-reports/internal/domain"
	"stairs/gym-reports/internal/repository"
	"stairs/gym-reports/internal/summarizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Fixed "now" for all pipeline tests: Sunday 2025-10-26. The 7-day window
// then starts 2025-10-19 (ISO week 42) and the 30-day window 2025-09-26.
var testNow = time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)

type stubSummarizer struct {
	weeklyErr  error
	monthlyErr error
	weekly     *summarizer.WeeklySummary
	monthly    *summarizer.MonthlySummary
}

func (s *stubSummarizer) Weekly(_ context.Context, facts summarizer.WeeklyFacts) (summarizer.WeeklySummary, error) {
	if s.weeklyErr != nil {
		return summarizer.WeeklySummary{}, s.weeklyErr
	}
	if s.weekly != nil {
		return *s.weekly, nil
	}
	return summarizer.FallbackWeekly(facts), nil
}

func (s *stubSummarizer) Monthly(_ context.Context, facts summarizer.MonthlyFacts) (summarizer.MonthlySummary, error) {
	if s.monthlyErr != nil {
		return summarizer.MonthlySummary{}, s.monthlyErr
	}
	if s.monthly != nil {
		return *s.monthly, nil
	}
	return summarizer.FallbackMonthly(facts), nil
}

type testEnv struct {
	svc      *reportService
	patients *fakePatientRepo
	workouts *fakeWorkoutRepo
	weekly   *fakeWeeklyRepo
	monthly  *fakeMonthlyRepo
	sum      *stubSummarizer
	sender   *recordingSender
	archive  *recordingArchive
}

func newTestEnv(t *testing.T, patients ...*domain.Patient) *testEnv {
	t.Helper()
	env := &testEnv{
		patients: newFakePatientRepo(patients...),
		workouts: &fakeWorkoutRepo{},
		weekly:   &fakeWeeklyRepo{},
		monthly:  &fakeMonthlyRepo{},
		sum:      &stubSummarizer{},
		sender:   &recordingSender{},
		archive:  &recordingArchive{},
	}
	svc := NewReportService(env.patients, env.workouts, &fakeAssessmentRepo{},
		env.weekly, env.monthly, env.sum, env.sender, env.sender, env.archive,
		zap.NewNop())
	env.svc = svc.(*reportService)
	env.svc.now = func() time.Time { return testNow }
	return env
}

func testPatient(name string, displayNum int) *domain.Patient {
	return &domain.Patient{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Status: domain.PatientActive,
		Email:  strings.ToLower(name) + "@example.com",
		Phone:  "+919876543210",
		Properties: domain.Properties{
			"ID": domain.CounterField(displayNum),
		},
	}
}

func addWorkouts(env *testEnv, patientID primitive.ObjectID, days ...int) {
	for _, day := range days {
		d := time.Date(2025, 10, day, 0, 0, 0, 0, time.UTC)
		env.workouts.workouts = append(env.workouts.workouts, domain.Workout{
			ID:          primitive.NewObjectID(),
			PatientID:   patientID,
			Date:        &d,
			DurationMin: 45,
			Rating:      domain.RatingGood,
		})
	}
}

func TestGenerateWeekly_CreatesReport(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20, 21, 23)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	require.NoError(t, out.Err)
	assert.Equal(t, OutcomeCreated, out.Outcome)
	assert.Equal(t, "WEEKLY-001-W42-2025", out.ReportID)

	require.Len(t, env.weekly.reports, 1)
	rep := env.weekly.reports[0]
	assert.Equal(t, p.ID, rep.PatientID)
	assert.Equal(t, 3, rep.TotalSessions)
	assert.Equal(t, 135, rep.TotalMinutes)
	assert.Equal(t, 100.0, rep.AttendanceRate)
	assert.Equal(t, 4.0, rep.AverageRating)
	assert.NotEmpty(t, rep.Summary)
}

func TestGenerateWeekly_Idempotent(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20, 21)

	first := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)
	second := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	assert.Equal(t, OutcomeCreated, first.Outcome)
	assert.Equal(t, OutcomeSkippedAlreadyExists, second.Outcome)
	assert.NoError(t, second.Err)
	assert.Len(t, env.weekly.reports, 1, "second run must not write a duplicate")
}

func TestGenerateWeekly_NoWorkouts(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	assert.Equal(t, OutcomeSkippedNoWorkouts, out.Outcome)
	assert.NoError(t, out.Err)
	assert.Empty(t, env.weekly.reports)
	assert.Empty(t, env.sender.emails)
}

func TestGenerateWeekly_SummarizerFailureFallsBack(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20, 21, 23)
	env.sum.weeklyErr = errors.New("model unavailable")

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	assert.Equal(t, OutcomeCreated, out.Outcome)
	require.Len(t, env.weekly.reports, 1)
	assert.Contains(t, env.weekly.reports[0].Summary, "Asha completed 3 sessions this week (135 minutes total).")
}

func TestGenerateWeekly_TruncatesLongNarratives(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20)
	long := strings.Repeat("é", 2500)
	env.sum.weekly = &summarizer.WeeklySummary{Summary: long, Improvements: long}

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	require.Equal(t, OutcomeCreated, out.Outcome)
	rep := env.weekly.reports[0]
	assert.Equal(t, 2000, len([]rune(rep.Summary)))
	assert.Equal(t, 2000, len([]rune(rep.Improvements)))
}

func TestGenerateWeekly_DeliversAndArchives(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20, 21)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	require.Equal(t, OutcomeCreated, out.Outcome)
	assert.Equal(t, []string{"asha@example.com"}, env.sender.emails)
	assert.Equal(t, []string{"+919876543210"}, env.sender.messages)
	assert.Equal(t, []string{"reports/weekly/WEEKLY-001-W42-2025.html"}, env.archive.keys)
}

func TestGenerateWeekly_DeliveryFailureDoesNotFailPipeline(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20)
	env.sender.err = errors.New("smtp down")
	env.archive.err = errors.New("bucket gone")

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	assert.Equal(t, OutcomeCreated, out.Outcome)
	assert.Len(t, env.weekly.reports, 1)
}

func TestGenerateWeekly_SkipsChannelsWithoutContact(t *testing.T) {
	p := testPatient("Asha", 1)
	p.Email = ""
	p.Phone = ""
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)

	assert.Equal(t, OutcomeCreated, out.Outcome)
	assert.Empty(t, env.sender.emails)
	assert.Empty(t, env.sender.messages)
}

func TestGenerateWeeklyForAll_IsolatesFailures(t *testing.T) {
	good := testPatient("Asha", 1)
	bad := testPatient("Ravi", 2)
	skip := testPatient("Zoya", 3)
	env := newTestEnv(t, good, bad, skip)
	addWorkouts(env, good.ID, 20, 21)
	env.workouts.listErr = map[primitive.ObjectID]error{bad.ID: errors.New("store timeout")}

	result := env.svc.GenerateWeeklyForAll(context.Background(), 7)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Outcomes, 3)
	assert.Len(t, env.weekly.reports, 1)
}

func TestGenerateMonthly_RequiresMinimumSessions(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20, 21)

	out := env.svc.GenerateMonthlyForPatient(context.Background(), p.ID, 30)

	assert.Equal(t, OutcomeSkippedInsufficient, out.Outcome)
	assert.Empty(t, env.monthly.reports)
}

func TestGenerateMonthly_CreatesReport(t *testing.T) {
	p := testPatient("Asha", 1)
	weight := 68.5
	p.Measurements.WeightKg = &weight
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 5, 12, 19, 23)

	out := env.svc.GenerateMonthlyForPatient(context.Background(), p.ID, 30)

	require.NoError(t, out.Err)
	assert.Equal(t, OutcomeCreated, out.Outcome)
	assert.Equal(t, "MONTHLY-001-SEP2025", out.ReportID)

	require.Len(t, env.monthly.reports, 1)
	rep := env.monthly.reports[0]
	assert.Equal(t, 4, rep.TotalSessions)
	assert.Equal(t, 180, rep.TotalMinutes)
	// 4 of 12 target sessions.
	assert.InDelta(t, 33.3, rep.AttendanceRate, 0.001)
	require.NotNil(t, rep.EndWeight)
	assert.Equal(t, 68.5, *rep.EndWeight)
}

func TestGenerateMonthly_Idempotent(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 5, 12, 19)

	first := env.svc.GenerateMonthlyForPatient(context.Background(), p.ID, 30)
	second := env.svc.GenerateMonthlyForPatient(context.Background(), p.ID, 30)

	assert.Equal(t, OutcomeCreated, first.Outcome)
	assert.Equal(t, OutcomeSkippedAlreadyExists, second.Outcome)
	assert.Len(t, env.monthly.reports, 1)
}

func TestPresignWeeklyArchive_ReturnsDownloadURL(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20, 21, 23)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)
	require.Equal(t, OutcomeCreated, out.Outcome)

	url, err := env.svc.PresignWeeklyArchive(context.Background(), out.ReportID)
	require.NoError(t, err)
	assert.Equal(t, "https://archive.example.com/reports/weekly/WEEKLY-001-W42-2025.html", url)
}

func TestPresignWeeklyArchive_UnknownReport(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.PresignWeeklyArchive(context.Background(), "WEEKLY-001-W42-2025")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPresignWeeklyArchive_ArchiveNotConfigured(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	env.svc.archive = nil
	addWorkouts(env, p.ID, 20)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)
	require.Equal(t, OutcomeCreated, out.Outcome)

	_, err := env.svc.PresignWeeklyArchive(context.Background(), out.ReportID)
	assert.ErrorIs(t, err, ErrArchiveNotConfigured)
}

func TestPresignWeeklyArchive_StorageFailure(t *testing.T) {
	p := testPatient("Asha", 1)
	env := newTestEnv(t, p)
	addWorkouts(env, p.ID, 20)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), p.ID, 7)
	require.Equal(t, OutcomeCreated, out.Outcome)

	env.archive.presignErr = errors.New("bucket gone")
	_, err := env.svc.PresignWeeklyArchive(context.Background(), out.ReportID)
	assert.Error(t, err)
}

func TestGenerateWeekly_UnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	out := env.svc.GenerateWeeklyForPatient(context.Background(), primitive.NewObjectID(), 7)

	assert.Equal(t, OutcomeFailed, out.Outcome)
	assert.Error(t, out.Err)
}
