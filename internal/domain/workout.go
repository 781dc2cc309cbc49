package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionRating is the trainer's overall rating for a session.
type SessionRating string

const (
	RatingExcellent    SessionRating = "Excellent"
	RatingGood         SessionRating = "Good"
	RatingAverage      SessionRating = "Average"
	RatingBelowAverage SessionRating = "Below Average"
	RatingPoor         SessionRating = "Poor"
)

// Score maps a rating to its numeric value (5 down to 1). Unknown or empty
// ratings score 0 and are excluded from averages.
func (r SessionRating) Score() int {
	switch r {
	case RatingExcellent:
		return 5
	case RatingGood:
		return 4
	case RatingAverage:
		return 3
	case RatingBelowAverage:
		return 2
	case RatingPoor:
		return 1
	default:
		return 0
	}
}

// Workout represents a single logged training session.
type Workout struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Title holds the canonical log id (WO-...). It may be stale or empty on
	// records created by hand; the fix-names pass repairs it.
	Title string `bson:"title" json:"title"`

	PatientID primitive.ObjectID `bson:"patientId,omitempty" json:"patientId"`
	TrainerID primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`

	// Date is nil when the record was saved without one; such records are
	// skipped from aggregation and naming.
	Date *time.Time `bson:"date,omitempty" json:"date,omitempty"`

	DurationMin int `bson:"durationMin" json:"durationMin"`

	Exercises  string   `bson:"exercises,omitempty" json:"exercises,omitempty"`
	FocusAreas []string `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`
	Noticed    string   `bson:"noticed,omitempty" json:"noticed,omitempty"`
	Improving  string   `bson:"improving,omitempty" json:"improving,omitempty"`
	Concerns   string   `bson:"concerns,omitempty" json:"concerns,omitempty"`

	Rating          SessionRating `bson:"rating,omitempty" json:"rating,omitempty"`
	PatientRating   SessionRating `bson:"patientRating,omitempty" json:"patientRating,omitempty"`
	PatientComments string        `bson:"patientComments,omitempty" json:"patientComments,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasDate reports whether the workout carries the date required for
// aggregation and identifier derivation.
func (w *Workout) HasDate() bool { return w.Date != nil && !w.Date.IsZero() }
