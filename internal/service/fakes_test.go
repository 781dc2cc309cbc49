package service

import (
	"context"
	"sort"
	"time"

	"stairs/gym-reports/internal/domain"
	"stairs/gym-reports/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository interfaces. They mirror the store's
// contract: sorted reads, ErrNotFound on misses, ErrAlreadyExists on
// duplicate report ids.

type fakePatientRepo struct {
	patients map[primitive.ObjectID]*domain.Patient
	listErr  error
}

func newFakePatientRepo(patients ...*domain.Patient) *fakePatientRepo {
	r := &fakePatientRepo{patients: map[primitive.ObjectID]*domain.Patient{}}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
}

func (r *fakePatientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) ListActive(_ context.Context) ([]domain.Patient, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.Patient{}
	for _, p := range r.patients {
		if p.Status == domain.PatientActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeTrainerRepo struct {
	trainers map[primitive.ObjectID]*domain.Trainer
}

func (r *fakeTrainerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

type fakeWorkoutRepo struct {
	workouts []domain.Workout
	listErr  map[primitive.ObjectID]error
	renamed  map[primitive.ObjectID]string
}

func (r *fakeWorkoutRepo) ListByPatientSince(_ context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.Workout, error) {
	if err := r.listErr[patientID]; err != nil {
		return nil, err
	}
	out := []domain.Workout{}
	for _, w := range r.workouts {
		if w.PatientID == patientID && w.HasDate() && !w.Date.Before(since) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(*out[j].Date) })
	return out, nil
}

func (r *fakeWorkoutRepo) ListAllSortedByDate(_ context.Context) ([]domain.Workout, error) {
	out := append([]domain.Workout{}, r.workouts...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].HasDate() || !out[j].HasDate() {
			return false
		}
		return out[i].Date.Before(*out[j].Date)
	})
	return out, nil
}

func (r *fakeWorkoutRepo) UpdateTitle(_ context.Context, id primitive.ObjectID, title string) error {
	if r.renamed == nil {
		r.renamed = map[primitive.ObjectID]string{}
	}
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			r.workouts[i].Title = title
			r.renamed[id] = title
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeAssessmentRepo struct {
	assessments []domain.Assessment
}

func (r *fakeAssessmentRepo) ListByPatientSince(_ context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.Assessment, error) {
	out := []domain.Assessment{}
	for _, a := range r.assessments {
		if a.PatientID == patientID && a.Date != nil && !a.Date.Before(since) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(*out[j].Date) })
	return out, nil
}

func (r *fakeAssessmentRepo) ListAll(_ context.Context) ([]domain.Assessment, error) {
	return append([]domain.Assessment{}, r.assessments...), nil
}

type fakeWeeklyRepo struct {
	reports   []domain.WeeklyReport
	createErr error
}

func (r *fakeWeeklyRepo) Create(_ context.Context, rep *domain.WeeklyReport) (primitive.ObjectID, error) {
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	for _, existing := range r.reports {
		if existing.ReportID == rep.ReportID {
			return primitive.NilObjectID, repository.ErrAlreadyExists
		}
	}
	rep.ID = primitive.NewObjectID()
	r.reports = append(r.reports, *rep)
	return rep.ID, nil
}

func (r *fakeWeeklyRepo) FindByReportID(_ context.Context, reportID string) (*domain.WeeklyReport, error) {
	for i := range r.reports {
		if r.reports[i].ReportID == reportID {
			return &r.reports[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWeeklyRepo) ListByPatientSince(_ context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.WeeklyReport, error) {
	out := []domain.WeeklyReport{}
	for _, rep := range r.reports {
		if rep.PatientID == patientID && !rep.WeekStart.Before(since) {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out, nil
}

func (r *fakeWeeklyRepo) ListAll(_ context.Context) ([]domain.WeeklyReport, error) {
	return append([]domain.WeeklyReport{}, r.reports...), nil
}

func (r *fakeWeeklyRepo) UpdateTitle(_ context.Context, id primitive.ObjectID, reportID string) error {
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].ReportID = reportID
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeMonthlyRepo struct {
	reports []domain.MonthlyReport
}

func (r *fakeMonthlyRepo) Create(_ context.Context, rep *domain.MonthlyReport) (primitive.ObjectID, error) {
	for _, existing := range r.reports {
		if existing.ReportID == rep.ReportID {
			return primitive.NilObjectID, repository.ErrAlreadyExists
		}
	}
	rep.ID = primitive.NewObjectID()
	r.reports = append(r.reports, *rep)
	return rep.ID, nil
}

func (r *fakeMonthlyRepo) FindByReportID(_ context.Context, reportID string) (*domain.MonthlyReport, error) {
	for i := range r.reports {
		if r.reports[i].ReportID == reportID {
			return &r.reports[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMonthlyRepo) ListAll(_ context.Context) ([]domain.MonthlyReport, error) {
	return append([]domain.MonthlyReport{}, r.reports...), nil
}

func (r *fakeMonthlyRepo) UpdateTitle(_ context.Context, id primitive.ObjectID, reportID string) error {
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].ReportID = reportID
			return nil
		}
	}
	return repository.ErrNotFound
}

// recordingSender captures notification sends.
type recordingSender struct {
	emails   []string
	messages []string
	err      error
}

func (s *recordingSender) SendEmail(_ context.Context, to, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.emails = append(s.emails, to)
	return nil
}

func (s *recordingSender) SendMessage(_ context.Context, phone, text string) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, phone)
	return nil
}

// recordingArchive captures archived object keys.
type recordingArchive struct {
	keys       []string
	err        error
	presignErr error
}

func (a *recordingArchive) Put(_ context.Context, objectKey, contentType string, body []byte) error {
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, objectKey)
	return nil
}

func (a *recordingArchive) GeneratePresignedDownloadURL(_ context.Context, objectKey string) (string, error) {
	if a.presignErr != nil {
		return "", a.presignErr
	}
	return "https://archive.example.com/" + objectKey, nil
}
