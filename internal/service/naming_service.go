package service

import (
	"context"
	"errors"
	"fmt"

	"stairs/gym-reports/internal/naming"
	"stairs/gym-reports/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FixResult summarizes one renaming pass.
type FixResult struct {
	Total     int
	Updated   int
	Unchanged int
	Skipped   int
	Failed    int
}

// VerifyKindResult summarizes format verification for one log kind.
type VerifyKindResult struct {
	Checked int
	Correct int
	Invalid []string
}

// VerifyResult covers all four identifier conventions.
type VerifyResult struct {
	Assessments VerifyKindResult
	Workouts    VerifyKindResult
	Weekly      VerifyKindResult
	Monthly     VerifyKindResult
}

// AllCorrect reports whether every checked identifier matched its convention.
func (v VerifyResult) AllCorrect() bool {
	return len(v.Assessments.Invalid) == 0 && len(v.Workouts.Invalid) == 0 &&
		len(v.Weekly.Invalid) == 0 && len(v.Monthly.Invalid) == 0
}

// NamingService repairs and verifies canonical log identifiers.
type NamingService interface {
	// FixWorkoutNames renumbers every workout log in one pass over the full
	// collection, ordered by date, and rewrites titles that drifted.
	FixWorkoutNames(ctx context.Context) (FixResult, error)
	FixWeeklyNames(ctx context.Context) (FixResult, error)
	FixMonthlyNames(ctx context.Context) (FixResult, error)
	VerifyAll(ctx context.Context) (VerifyResult, error)
}

type namingService struct {
	patientRepo repository.PatientRepository
	trainerRepo repository.TrainerRepository
	workoutRepo repository.WorkoutRepository
	assessRepo  repository.AssessmentRepository
	weeklyRepo  repository.WeeklyReportRepository
	monthlyRepo repository.MonthlyReportRepository
	logger      *zap.Logger
}

// NewNamingService creates a new naming service.
func NewNamingService(
	patientRepo repository.PatientRepository,
	trainerRepo repository.TrainerRepository,
	workoutRepo repository.WorkoutRepository,
	assessRepo repository.AssessmentRepository,
	weeklyRepo repository.WeeklyReportRepository,
	monthlyRepo repository.MonthlyReportRepository,
	logger *zap.Logger,
) NamingService {
	return &namingService{
		patientRepo: patientRepo,
		trainerRepo: trainerRepo,
		workoutRepo: workoutRepo,
		assessRepo:  assessRepo,
		weeklyRepo:  weeklyRepo,
		monthlyRepo: monthlyRepo,
		logger:      logger,
	}
}

func (s *namingService) FixWorkoutNames(ctx context.Context) (FixResult, error) {
	var result FixResult

	workouts, err := s.workoutRepo.ListAllSortedByDate(ctx)
	if err != nil {
		return result, fmt.Errorf("list workouts: %w", err)
	}
	result.Total = len(workouts)

	// Display ids are stable within a pass; fetch each patient and trainer
	// once.
	patientIDs := map[primitive.ObjectID]string{}
	trainerIDs := map[primitive.ObjectID]string{}
	counter := naming.NewSessionCounter()

	for i := range workouts {
		w := &workouts[i]

		if !w.HasDate() {
			s.logger.Debug("skipping workout without date", zap.String("id", w.ID.Hex()))
			result.Skipped++
			continue
		}
		if w.PatientID.IsZero() {
			s.logger.Debug("skipping workout without patient", zap.String("id", w.ID.Hex()))
			result.Skipped++
			continue
		}

		patientID := s.patientDisplayID(ctx, patientIDs, w.PatientID)
		trainerID := naming.DefaultTrainerID
		if !w.TrainerID.IsZero() {
			trainerID = s.trainerDisplayID(ctx, trainerIDs, w.TrainerID)
		}

		date := w.Date.Format("2006-01-02")
		session := counter.Next(w.PatientID.Hex(), date)

		newTitle, err := naming.WorkoutID(patientID, trainerID, date, session)
		if err != nil {
			s.logger.Warn("cannot derive workout log id",
				zap.String("id", w.ID.Hex()), zap.Error(err))
			result.Skipped++
			continue
		}

		if w.Title == newTitle {
			result.Unchanged++
			continue
		}

		if err := s.workoutRepo.UpdateTitle(ctx, w.ID, newTitle); err != nil {
			s.logger.Warn("failed to rename workout log",
				zap.String("id", w.ID.Hex()),
				zap.String("new_title", newTitle),
				zap.Error(err))
			result.Failed++
			continue
		}

		s.logger.Info("workout log renamed",
			zap.String("old", w.Title), zap.String("new", newTitle))
		result.Updated++
	}

	return result, nil
}

func (s *namingService) FixWeeklyNames(ctx context.Context) (FixResult, error) {
	var result FixResult

	reports, err := s.weeklyRepo.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("list weekly reports: %w", err)
	}
	result.Total = len(reports)

	patientIDs := map[primitive.ObjectID]string{}

	for i := range reports {
		rep := &reports[i]

		if rep.PatientID.IsZero() || rep.WeekStart.IsZero() {
			result.Skipped++
			continue
		}

		patientID := s.patientDisplayID(ctx, patientIDs, rep.PatientID)
		newID, err := naming.WeeklyID(patientID, rep.WeekStart)
		if err != nil {
			result.Skipped++
			continue
		}

		s.applyRename(ctx, rep.ReportID, newID, &result, func() error {
			return s.weeklyRepo.UpdateTitle(ctx, rep.ID, newID)
		})
	}

	return result, nil
}

func (s *namingService) FixMonthlyNames(ctx context.Context) (FixResult, error) {
	var result FixResult

	reports, err := s.monthlyRepo.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("list monthly reports: %w", err)
	}
	result.Total = len(reports)

	patientIDs := map[primitive.ObjectID]string{}

	for i := range reports {
		rep := &reports[i]

		if rep.PatientID.IsZero() || rep.MonthStart.IsZero() {
			result.Skipped++
			continue
		}

		patientID := s.patientDisplayID(ctx, patientIDs, rep.PatientID)
		newID, err := naming.MonthlyID(patientID, rep.MonthStart)
		if err != nil {
			result.Skipped++
			continue
		}

		s.applyRename(ctx, rep.ReportID, newID, &result, func() error {
			return s.monthlyRepo.UpdateTitle(ctx, rep.ID, newID)
		})
	}

	return result, nil
}

func (s *namingService) applyRename(ctx context.Context, current, next string, result *FixResult, update func() error) {
	if current == next {
		result.Unchanged++
		return
	}
	if err := update(); err != nil {
		s.logger.Warn("failed to rename report",
			zap.String("old", current), zap.String("new", next), zap.Error(err))
		result.Failed++
		return
	}
	s.logger.Info("report renamed", zap.String("old", current), zap.String("new", next))
	result.Updated++
}

func (s *namingService) VerifyAll(ctx context.Context) (VerifyResult, error) {
	var result VerifyResult

	assessments, err := s.assessRepo.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("list assessments: %w", err)
	}
	for _, a := range assessments {
		check(&result.Assessments, a.Title, naming.ValidAssessmentID)
	}

	workouts, err := s.workoutRepo.ListAllSortedByDate(ctx)
	if err != nil {
		return result, fmt.Errorf("list workouts: %w", err)
	}
	for _, w := range workouts {
		check(&result.Workouts, w.Title, naming.ValidWorkoutID)
	}

	weekly, err := s.weeklyRepo.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("list weekly reports: %w", err)
	}
	for _, r := range weekly {
		check(&result.Weekly, r.ReportID, naming.ValidWeeklyID)
	}

	monthly, err := s.monthlyRepo.ListAll(ctx)
	if err != nil {
		return result, fmt.Errorf("list monthly reports: %w", err)
	}
	for _, r := range monthly {
		check(&result.Monthly, r.ReportID, naming.ValidMonthlyID)
	}

	return result, nil
}

func check(kind *VerifyKindResult, id string, valid func(string) bool) {
	kind.Checked++
	if valid(id) {
		kind.Correct++
	} else {
		kind.Invalid = append(kind.Invalid, id)
	}
}

// patientDisplayID resolves and caches one patient's three-digit display id.
// A patient that cannot be loaded resolves to "000", matching the resolver's
// behavior for records with no usable id field.
func (s *namingService) patientDisplayID(ctx context.Context, cache map[primitive.ObjectID]string, id primitive.ObjectID) string {
	if v, ok := cache[id]; ok {
		return v
	}
	display := "000"
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("failed to load patient for display id",
				zap.String("patient_id", id.Hex()), zap.Error(err))
		}
	} else {
		display = naming.PatientDisplayID(patient.ID.Hex(), patient.Properties)
	}
	cache[id] = display
	return display
}

func (s *namingService) trainerDisplayID(ctx context.Context, cache map[primitive.ObjectID]string, id primitive.ObjectID) string {
	if v, ok := cache[id]; ok {
		return v
	}
	display := naming.DefaultTrainerID
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("failed to load trainer for display id",
				zap.String("trainer_id", id.Hex()), zap.Error(err))
		}
	} else {
		display = naming.TrainerDisplayID(trainer.ID.Hex(), trainer.Properties)
	}
	cache[id] = display
	return display
}
