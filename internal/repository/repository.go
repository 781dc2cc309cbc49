package repository

import (
	"context"
	"time"

	"stairs/gym-reports/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound      = RepositoryError("not found")
	ErrAlreadyExists = RepositoryError("already exists")
	ErrUpdateFailed  = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PatientRepository defines the interface for interacting with patient records.
type PatientRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Patient, error)
	// ListActive returns all patients whose status is Active.
	ListActive(ctx context.Context) ([]domain.Patient, error)
}

// TrainerRepository defines the interface for interacting with trainer records.
type TrainerRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
}

// WorkoutRepository defines the interface for interacting with workout logs.
type WorkoutRepository interface {
	// ListByPatientSince returns the patient's workouts dated on or after
	// since, sorted ascending by date.
	ListByPatientSince(ctx context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.Workout, error)
	// ListAllSortedByDate returns every workout log sorted ascending by date,
	// with the store id as a stable tiebreak. The fix-names pass depends on
	// this ordering for session numbering.
	ListAllSortedByDate(ctx context.Context) ([]domain.Workout, error)
	// UpdateTitle renames the workout's log id.
	UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) error
}

// AssessmentRepository defines the interface for interacting with assessment logs.
type AssessmentRepository interface {
	// ListByPatientSince returns assessments dated on or after since, most
	// recent first.
	ListByPatientSince(ctx context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.Assessment, error)
	ListAll(ctx context.Context) ([]domain.Assessment, error)
}

// WeeklyReportRepository defines the interface for weekly report records.
type WeeklyReportRepository interface {
	Create(ctx context.Context, rep *domain.WeeklyReport) (primitive.ObjectID, error)
	// FindByReportID looks a report up by its canonical identifier. Returns
	// ErrNotFound when absent; the idempotency guard builds on this.
	FindByReportID(ctx context.Context, reportID string) (*domain.WeeklyReport, error)
	// ListByPatientSince returns the patient's weekly reports whose week
	// start is on or after since, sorted ascending. Feeds the monthly prompt.
	ListByPatientSince(ctx context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.WeeklyReport, error)
	ListAll(ctx context.Context) ([]domain.WeeklyReport, error)
	UpdateTitle(ctx context.Context, id primitive.ObjectID, reportID string) error
}

// MonthlyReportRepository defines the interface for monthly report records.
type MonthlyReportRepository interface {
	Create(ctx context.Context, rep *domain.MonthlyReport) (primitive.ObjectID, error)
	FindByReportID(ctx context.Context, reportID string) (*domain.MonthlyReport, error)
	ListAll(ctx context.Context) ([]domain.MonthlyReport, error)
	UpdateTitle(ctx context.Context, id primitive.ObjectID, reportID string) error
}
