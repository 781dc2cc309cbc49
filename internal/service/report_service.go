package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stairs/gym-reports/internal/domain"
	"stairs/gym-reports/internal/naming"
	"stairs/gym-reports/internal/notify"
	"stairs/gym-reports/internal/report"
	"stairs/gym-reports/internal/repository"
	"stairs/gym-reports/internal/storage"
	"stairs/gym-reports/internal/summarizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Summary text fields are capped at the record store's limit.
const maxSummaryFieldLen = 2000

// Outcome classifies the result of one patient's report generation.
type Outcome string

const (
	OutcomeCreated              Outcome = "created"
	OutcomeSkippedNoWorkouts    Outcome = "skipped_no_workouts"
	OutcomeSkippedInsufficient  Outcome = "skipped_insufficient_data"
	OutcomeSkippedAlreadyExists Outcome = "skipped_already_exists"
	OutcomeFailed               Outcome = "failed"
)

// Skipped reports whether the outcome is any of the skip variants. Skips are
// successes: the pipeline looked and correctly produced nothing.
func (o Outcome) Skipped() bool {
	switch o {
	case OutcomeSkippedNoWorkouts, OutcomeSkippedInsufficient, OutcomeSkippedAlreadyExists:
		return true
	}
	return false
}

// PatientOutcome is the per-patient result of a generation pass.
type PatientOutcome struct {
	PatientID   primitive.ObjectID
	PatientName string
	ReportID    string
	Outcome     Outcome
	Err         error
}

// BatchResult aggregates a full generation run over all active patients.
type BatchResult struct {
	RunID    string
	Created  int
	Skipped  int
	Failed   int
	Outcomes []PatientOutcome
}

// ErrArchiveNotConfigured is returned when an archive download is requested
// but no archive storage is wired.
var ErrArchiveNotConfigured = errors.New("report archive storage is not configured")

// ReportService drives weekly and monthly report generation.
type ReportService interface {
	// GenerateWeeklyForPatient builds one patient's weekly report over the
	// last days days. A nil error with a skip outcome means nothing needed
	// doing.
	GenerateWeeklyForPatient(ctx context.Context, patientID primitive.ObjectID, days int) PatientOutcome
	GenerateWeeklyForAll(ctx context.Context, days int) BatchResult
	GenerateMonthlyForPatient(ctx context.Context, patientID primitive.ObjectID, days int) PatientOutcome
	GenerateMonthlyForAll(ctx context.Context, days int) BatchResult

	// PresignWeeklyArchive returns a temporary download link for the archived
	// HTML of an existing weekly report.
	PresignWeeklyArchive(ctx context.Context, reportID string) (string, error)
}

type reportService struct {
	patientRepo repository.PatientRepository
	workoutRepo repository.WorkoutRepository
	assessRepo  repository.AssessmentRepository
	weeklyRepo  repository.WeeklyReportRepository
	monthlyRepo repository.MonthlyReportRepository

	summarizer summarizer.Summarizer

	// Delivery and archival are optional; a nil sender means that channel is
	// not configured.
	email    notify.EmailSender
	whatsapp notify.MessageSender
	archive  storage.ArchiveStorage

	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(
	patientRepo repository.PatientRepository,
	workoutRepo repository.WorkoutRepository,
	assessRepo repository.AssessmentRepository,
	weeklyRepo repository.WeeklyReportRepository,
	monthlyRepo repository.MonthlyReportRepository,
	sum summarizer.Summarizer,
	email notify.EmailSender,
	whatsapp notify.MessageSender,
	archive storage.ArchiveStorage,
	logger *zap.Logger,
) ReportService {
	return &reportService{
		patientRepo: patientRepo,
		workoutRepo: workoutRepo,
		assessRepo:  assessRepo,
		weeklyRepo:  weeklyRepo,
		monthlyRepo: monthlyRepo,
		summarizer:  sum,
		email:       email,
		whatsapp:    whatsapp,
		archive:     archive,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *reportService) GenerateWeeklyForPatient(ctx context.Context, patientID primitive.ObjectID, days int) PatientOutcome {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return PatientOutcome{PatientID: patientID, Outcome: OutcomeFailed, Err: fmt.Errorf("load patient: %w", err)}
	}
	return s.generateWeekly(ctx, patient, days)
}

func (s *reportService) GenerateWeeklyForAll(ctx context.Context, days int) BatchResult {
	return s.runBatch(ctx, "weekly", func(ctx context.Context, p *domain.Patient) PatientOutcome {
		return s.generateWeekly(ctx, p, days)
	})
}

func (s *reportService) GenerateMonthlyForPatient(ctx context.Context, patientID primitive.ObjectID, days int) PatientOutcome {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return PatientOutcome{PatientID: patientID, Outcome: OutcomeFailed, Err: fmt.Errorf("load patient: %w", err)}
	}
	return s.generateMonthly(ctx, patient, days)
}

func (s *reportService) GenerateMonthlyForAll(ctx context.Context, days int) BatchResult {
	return s.runBatch(ctx, "monthly", func(ctx context.Context, p *domain.Patient) PatientOutcome {
		return s.generateMonthly(ctx, p, days)
	})
}

// runBatch applies one generation function to every active patient. A failure
// for one patient never aborts the run.
func (s *reportService) runBatch(ctx context.Context, kind string, generate func(context.Context, *domain.Patient) PatientOutcome) BatchResult {
	result := BatchResult{RunID: uuid.New().String()}

	patients, err := s.patientRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list active patients",
			zap.String("run_id", result.RunID), zap.Error(err))
		return result
	}

	s.logger.Info("report batch started",
		zap.String("run_id", result.RunID),
		zap.String("kind", kind),
		zap.Int("patients", len(patients)))

	for i := range patients {
		outcome := generate(ctx, &patients[i])
		result.Outcomes = append(result.Outcomes, outcome)
		switch {
		case outcome.Outcome == OutcomeCreated:
			result.Created++
		case outcome.Outcome.Skipped():
			result.Skipped++
		default:
			result.Failed++
			s.logger.Warn("report generation failed for patient",
				zap.String("run_id", result.RunID),
				zap.String("patient", outcome.PatientName),
				zap.Error(outcome.Err))
		}
	}

	s.logger.Info("report batch finished",
		zap.String("run_id", result.RunID),
		zap.String("kind", kind),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result
}

func (s *reportService) generateWeekly(ctx context.Context, patient *domain.Patient, days int) PatientOutcome {
	out := PatientOutcome{PatientID: patient.ID, PatientName: patient.Name}
	if days <= 0 {
		days = 7
	}

	weekEnd := s.now().UTC().Truncate(24 * time.Hour)
	weekStart := weekEnd.AddDate(0, 0, -days)

	workouts, err := s.workoutRepo.ListByPatientSince(ctx, patient.ID, weekStart)
	if err != nil {
		out.Outcome, out.Err = OutcomeFailed, fmt.Errorf("list workouts: %w", err)
		return out
	}
	if len(workouts) == 0 {
		out.Outcome = OutcomeSkippedNoWorkouts
		return out
	}

	metrics := report.Aggregate(workouts, report.WeeklyTargetSessions)

	displayID := naming.PatientDisplayID(patient.ID.Hex(), patient.Properties)
	reportID, err := naming.WeeklyID(displayID, weekStart)
	if err != nil {
		out.Outcome, out.Err = OutcomeFailed, err
		return out
	}
	out.ReportID = reportID

	// One report per (patient, week): look before creating.
	if _, err := s.weeklyRepo.FindByReportID(ctx, reportID); err == nil {
		out.Outcome = OutcomeSkippedAlreadyExists
		return out
	} else if !errors.Is(err, repository.ErrNotFound) {
		out.Outcome, out.Err = OutcomeFailed, fmt.Errorf("check existing report: %w", err)
		return out
	}

	var assessment *domain.Assessment
	assessments, err := s.assessRepo.ListByPatientSince(ctx, patient.ID, weekStart)
	if err != nil {
		s.logger.Warn("failed to load assessments, continuing without",
			zap.String("patient", patient.Name), zap.Error(err))
	} else if len(assessments) > 0 {
		assessment = &assessments[0]
	}

	facts := summarizer.WeeklyFacts{
		PatientName: patient.Name,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
		Metrics:     metrics,
		Workouts:    workouts,
		Assessment:  assessment,
	}
	sum, err := s.summarizer.Weekly(ctx, facts)
	if err != nil {
		s.logger.Warn("summarizer failed, using fallback",
			zap.String("patient", patient.Name), zap.Error(err))
		sum = summarizer.FallbackWeekly(facts)
	}

	rep := &domain.WeeklyReport{
		ReportID:        reportID,
		PatientID:       patient.ID,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		GeneratedAt:     s.now().UTC(),
		TotalSessions:   metrics.TotalSessions,
		TotalMinutes:    metrics.TotalMinutes,
		AverageRating:   metrics.AverageRating,
		AttendanceRate:  metrics.AttendanceRate,
		Summary:         truncate(sum.Summary),
		Improvements:    truncate(sum.Improvements),
		Concerns:        truncate(sum.Concerns),
		Recommendations: truncate(sum.Recommendations),
	}

	if _, err := s.weeklyRepo.Create(ctx, rep); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			out.Outcome = OutcomeSkippedAlreadyExists
			return out
		}
		out.Outcome, out.Err = OutcomeFailed, fmt.Errorf("create report: %w", err)
		return out
	}

	s.logger.Info("weekly report created",
		zap.String("report_id", reportID),
		zap.String("patient", patient.Name),
		zap.Int("sessions", metrics.TotalSessions))

	s.deliverWeekly(ctx, patient, rep, workouts)

	out.Outcome = OutcomeCreated
	return out
}

// deliverWeekly archives and sends the report. All of it is best effort:
// failures are logged and never surface to the pipeline outcome.
func (s *reportService) deliverWeekly(ctx context.Context, patient *domain.Patient, rep *domain.WeeklyReport, workouts []domain.Workout) {
	html := notify.WeeklyEmailHTML(patient.Name, rep, workouts)

	if s.archive != nil {
		key := weeklyArchiveKey(rep.ReportID)
		if err := s.archive.Put(ctx, key, "text/html", []byte(html)); err != nil {
			s.logger.Warn("failed to archive report",
				zap.String("report_id", rep.ReportID), zap.Error(err))
		}
	}

	if s.email != nil && patient.Email != "" {
		if err := s.email.SendEmail(ctx, patient.Email, notify.WeeklySubject(rep), html); err != nil {
			s.logger.Warn("failed to send report email",
				zap.String("report_id", rep.ReportID),
				zap.String("patient", patient.Name),
				zap.Error(err))
		}
	}

	if s.whatsapp != nil && patient.Phone != "" {
		if err := s.whatsapp.SendMessage(ctx, patient.Phone, notify.WeeklyMessage(patient.Name, rep)); err != nil {
			s.logger.Warn("failed to send report whatsapp message",
				zap.String("report_id", rep.ReportID),
				zap.String("patient", patient.Name),
				zap.Error(err))
		}
	}
}

// PresignWeeklyArchive resolves the archive object for reportID and returns a
// presigned download URL. The report must exist in the store.
func (s *reportService) PresignWeeklyArchive(ctx context.Context, reportID string) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveNotConfigured
	}
	if _, err := s.weeklyRepo.FindByReportID(ctx, reportID); err != nil {
		return "", err
	}
	key := weeklyArchiveKey(reportID)
	url, err := s.archive.GeneratePresignedDownloadURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presign archive download: %w", err)
	}
	return url, nil
}

func weeklyArchiveKey(reportID string) string {
	return fmt.Sprintf("reports/weekly/%s.html", reportID)
}

func (s *reportService) generateMonthly(ctx context.Context, patient *domain.Patient, days int) PatientOutcome {
	out := PatientOutcome{PatientID: patient.ID, PatientName: patient.Name}
	if days <= 0 {
		days = 30
	}

	monthEnd := s.now().UTC().Truncate(24 * time.Hour)
	monthStart := monthEnd.AddDate(0, 0, -days)

	workouts, err := s.workoutRepo.ListByPatientSince(ctx, patient.ID, monthStart)
	if err != nil {
		out.Outcome, out.Err = OutcomeFailed, fmt.Errorf("list workouts: %w", err)
		return out
	}
	if len(workouts) == 0 {
		out.Outcome = OutcomeSkippedNoWorkouts
		return out
	}

	metrics := report.Aggregate(workouts, report.MonthlyTargetSessions)
	if !metrics.MeetsMinimum(report.MonthlyMinimumSessions) {
		out.Outcome = OutcomeSkippedInsufficient
		return out
	}

	displayID := naming.PatientDisplayID(patient.ID.Hex(), patient.Properties)
	reportID, err := naming.MonthlyID(displayID, monthStart)
	if err != nil {
		out.Outcome, out.Err = OutcomeFailed, err
		return out
	}
	out.ReportID = reportID

	if _, err := s.monthlyRepo.FindByReportID(ctx, reportID); err == nil {
		out.Outcome = OutcomeSkippedAlreadyExists
		return out
	} else if !errors.Is(err, repository.ErrNotFound) {
		out.Outcome, out.Err = OutcomeFailed, fmt.Errorf("check existing report: %w", err)
		return out
	}

	weeklies, err := s.weeklyRepo.ListByPatientSince(ctx, patient.ID, monthStart)
	if err != nil {
		s.logger.Warn("failed to load weekly reports, continuing without",
			zap.String("patient", patient.Name), zap.Error(err))
		weeklies = nil
	}

	facts := summarizer.MonthlyFacts{
		PatientName:     patient.Name,
		MonthStart:      monthStart,
		MonthEnd:        monthEnd,
		Metrics:         metrics,
		Workouts:        workouts,
		WeeklySummaries: weeklies,
		Measurements:    patient.Measurements,
	}
	sum, err := s.summarizer.Monthly(ctx, facts)
	if err != nil {
		s.logger.Warn("summarizer failed, using fallback",
			zap.String("patient", patient.Name), zap.Error(err))
		sum = summarizer.FallbackMonthly(facts)
	}

	rep := &domain.MonthlyReport{
		ReportID:       reportID,
		PatientID:      patient.ID,
		MonthStart:     monthStart,
		MonthEnd:       monthEnd,
		GeneratedAt:    s.now().UTC(),
		TotalSessions:  metrics.TotalSessions,
		TotalMinutes:   metrics.TotalMinutes,
		AttendanceRate: metrics.AttendanceRate,
		Summary:        truncate(sum.Summary),
		Achievements:   truncate(sum.Achievements),
		Challenges:     truncate(sum.Challenges),
		NextMonthFocus: truncate(sum.NextMonthFocus),
		TrainerComment: truncate(sum.TrainerComments),
		EndWeight:      patient.Measurements.WeightKg,
	}

	if _, err := s.monthlyRepo.Create(ctx, rep); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			out.Outcome = OutcomeSkippedAlreadyExists
			return out
		}
		out.Outcome, out.Err = OutcomeFailed, fmt.Errorf("create report: %w", err)
		return out
	}

	s.logger.Info("monthly report created",
		zap.String("report_id", reportID),
		zap.String("patient", patient.Name),
		zap.Int("sessions", metrics.TotalSessions))

	out.Outcome = OutcomeCreated
	return out
}

// truncate caps a narrative field at the store's limit, counting runes so a
// multibyte summary never gets split mid-character.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSummaryFieldLen {
		return s
	}
	return string(runes[:maxSummaryFieldLen])
}
