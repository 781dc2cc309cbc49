package service

import (
	"context"
	"testing"
	"time"

	"stairs/gym-reports/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newNamingEnv(t *testing.T) (*fakePatientRepo, *fakeTrainerRepo, *fakeWorkoutRepo, *fakeAssessmentRepo, *fakeWeeklyRepo, *fakeMonthlyRepo, NamingService) {
	t.Helper()
	patients := newFakePatientRepo()
	trainers := &fakeTrainerRepo{trainers: map[primitive.ObjectID]*domain.Trainer{}}
	workouts := &fakeWorkoutRepo{}
	assessments := &fakeAssessmentRepo{}
	weekly := &fakeWeeklyRepo{}
	monthly := &fakeMonthlyRepo{}
	svc := NewNamingService(patients, trainers, workouts, assessments, weekly, monthly, zap.NewNop())
	return patients, trainers, workouts, assessments, weekly, monthly, svc
}

func dateOn(day int) *time.Time {
	d := time.Date(2025, 10, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestFixWorkoutNames_RenumbersInDateOrder(t *testing.T) {
	patients, trainers, workouts, _, _, _, svc := newNamingEnv(t)

	patient := testPatient("Asha", 7)
	patients.patients[patient.ID] = patient
	trainer := &domain.Trainer{
		ID:         primitive.NewObjectID(),
		Name:       "Kiran",
		Properties: domain.Properties{"Trainer ID": domain.CounterField(3)},
	}
	trainers.trainers[trainer.ID] = trainer

	first := domain.Workout{ID: primitive.NewObjectID(), PatientID: patient.ID, TrainerID: trainer.ID, Date: dateOn(26), Title: "Morning session"}
	second := domain.Workout{ID: primitive.NewObjectID(), PatientID: patient.ID, TrainerID: trainer.ID, Date: dateOn(26), Title: ""}
	earlier := domain.Workout{ID: primitive.NewObjectID(), PatientID: patient.ID, Date: dateOn(25), Title: "WO-007-T000-20251025-001"}
	workouts.workouts = []domain.Workout{first, second, earlier}

	result, err := svc.FixWorkoutNames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	// Two sessions on the 26th get sequence numbers in date order.
	assert.Equal(t, "WO-007-T003-20251026-001", workouts.renamed[first.ID])
	assert.Equal(t, "WO-007-T003-20251026-002", workouts.renamed[second.ID])
}

func TestFixWorkoutNames_SkipsIncompleteRecords(t *testing.T) {
	patients, _, workouts, _, _, _, svc := newNamingEnv(t)

	patient := testPatient("Asha", 1)
	patients.patients[patient.ID] = patient

	noDate := domain.Workout{ID: primitive.NewObjectID(), PatientID: patient.ID}
	noPatient := domain.Workout{ID: primitive.NewObjectID(), Date: dateOn(20)}
	ok := domain.Workout{ID: primitive.NewObjectID(), PatientID: patient.ID, Date: dateOn(20)}
	workouts.workouts = []domain.Workout{noDate, noPatient, ok}

	result, err := svc.FixWorkoutNames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, "WO-001-T000-20251020-001", workouts.renamed[ok.ID])
}

func TestFixWorkoutNames_UnknownPatientFallsBackToDefault(t *testing.T) {
	_, _, workouts, _, _, _, svc := newNamingEnv(t)

	w := domain.Workout{ID: primitive.NewObjectID(), PatientID: primitive.NewObjectID(), Date: dateOn(20)}
	workouts.workouts = []domain.Workout{w}

	result, err := svc.FixWorkoutNames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, "WO-000-T000-20251020-001", workouts.renamed[w.ID])
}

func TestFixWeeklyNames(t *testing.T) {
	patients, _, _, _, weekly, _, svc := newNamingEnv(t)

	patient := testPatient("Asha", 1)
	patients.patients[patient.ID] = patient

	weekly.reports = []domain.WeeklyReport{
		{
			ID:        primitive.NewObjectID(),
			ReportID:  "WEEKLY-Asha-W43-2025",
			PatientID: patient.ID,
			WeekStart: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        primitive.NewObjectID(),
			ReportID:  "WEEKLY-001-W42-2025",
			PatientID: patient.ID,
			WeekStart: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	result, err := svc.FixWeeklyNames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, "WEEKLY-001-W43-2025", weekly.reports[0].ReportID)
}

func TestFixMonthlyNames(t *testing.T) {
	patients, _, _, _, _, monthly, svc := newNamingEnv(t)

	patient := testPatient("Asha", 1)
	patients.patients[patient.ID] = patient

	monthly.reports = []domain.MonthlyReport{
		{
			ID:         primitive.NewObjectID(),
			ReportID:   "MONTHLY-Asha-OCT2025",
			PatientID:  patient.ID,
			MonthStart: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	result, err := svc.FixMonthlyNames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, "MONTHLY-001-OCT2025", monthly.reports[0].ReportID)
}

func TestVerifyAll(t *testing.T) {
	_, _, workouts, assessments, weekly, monthly, svc := newNamingEnv(t)

	workouts.workouts = []domain.Workout{
		{ID: primitive.NewObjectID(), Title: "WO-007-T003-20251026-001", Date: dateOn(26)},
		{ID: primitive.NewObjectID(), Title: "Morning session", Date: dateOn(26)},
	}
	assessments.assessments = []domain.Assessment{
		{ID: primitive.NewObjectID(), Title: "ASSESS-001-T001-20251026"},
	}
	weekly.reports = []domain.WeeklyReport{
		{ID: primitive.NewObjectID(), ReportID: "WEEKLY-001-W43-2025"},
	}
	monthly.reports = []domain.MonthlyReport{
		{ID: primitive.NewObjectID(), ReportID: "MONTHLY-001-OCT2025"},
		{ID: primitive.NewObjectID(), ReportID: "MONTHLY-001-OCTOBER2025"},
	}

	result, err := svc.VerifyAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Assessments.Correct)
	assert.Equal(t, 1, result.Workouts.Correct)
	assert.Equal(t, []string{"Morning session"}, result.Workouts.Invalid)
	assert.Equal(t, 1, result.Weekly.Correct)
	assert.Equal(t, 1, result.Monthly.Correct)
	assert.Equal(t, []string{"MONTHLY-001-OCTOBER2025"}, result.Monthly.Invalid)
	assert.False(t, result.AllCorrect())
}
