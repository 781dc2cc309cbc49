package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyReport is a derived weekly progress record for one patient.
type WeeklyReport struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// ReportID is the canonical identifier (WEEKLY-{patient}-W{week}-{year}).
	// Exactly one report per (patient, week) may exist; the service checks
	// for it before creating.
	ReportID string `bson:"reportId" json:"reportId"`

	PatientID primitive.ObjectID `bson:"patientId" json:"patientId"`

	WeekStart   time.Time `bson:"weekStart" json:"weekStart"`
	WeekEnd     time.Time `bson:"weekEnd" json:"weekEnd"`
	GeneratedAt time.Time `bson:"generatedAt" json:"generatedAt"`

	TotalSessions  int     `bson:"totalSessions" json:"totalSessions"`
	TotalMinutes   int     `bson:"totalMinutes" json:"totalMinutes"`
	AverageRating  float64 `bson:"averageRating" json:"averageRating"`
	AttendanceRate float64 `bson:"attendanceRate" json:"attendanceRate"`

	Summary         string `bson:"summary" json:"summary"`
	Improvements    string `bson:"improvements" json:"improvements"`
	Concerns        string `bson:"concerns" json:"concerns"`
	Recommendations string `bson:"recommendations" json:"recommendations"`
}

// MonthlyReport is a derived monthly progress record for one patient.
type MonthlyReport struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// ReportID is the canonical identifier (MONTHLY-{patient}-{MON}{year}).
	ReportID string `bson:"reportId" json:"reportId"`

	PatientID primitive.ObjectID `bson:"patientId" json:"patientId"`

	MonthStart  time.Time `bson:"monthStart" json:"monthStart"`
	MonthEnd    time.Time `bson:"monthEnd" json:"monthEnd"`
	GeneratedAt time.Time `bson:"generatedAt" json:"generatedAt"`

	TotalSessions  int     `bson:"totalSessions" json:"totalSessions"`
	TotalMinutes   int     `bson:"totalMinutes" json:"totalMinutes"`
	AttendanceRate float64 `bson:"attendanceRate" json:"attendanceRate"`

	Summary        string `bson:"summary" json:"summary"`
	Achievements   string `bson:"achievements" json:"achievements"`
	Challenges     string `bson:"challenges" json:"challenges"`
	NextMonthFocus string `bson:"nextMonthFocus" json:"nextMonthFocus"`
	TrainerComment string `bson:"trainerComment" json:"trainerComment"`

	// EndWeight snapshots the patient's weight at generation time.
	EndWeight *float64 `bson:"endWeight,omitempty" json:"endWeight,omitempty"`
}
