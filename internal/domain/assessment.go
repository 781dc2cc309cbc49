package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assessment represents a fitness assessment conducted by a trainer.
type Assessment struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Title holds the canonical assessment id (ASSESS-...).
	Title string `bson:"title" json:"title"`

	PatientID primitive.ObjectID `bson:"patientId,omitempty" json:"patientId"`
	TrainerID primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	Date      *time.Time         `bson:"date,omitempty" json:"date,omitempty"`

	StrengthScore    *float64 `bson:"strengthScore,omitempty" json:"strengthScore,omitempty"`
	MobilityScore    *float64 `bson:"mobilityScore,omitempty" json:"mobilityScore,omitempty"`
	BalanceScore     *float64 `bson:"balanceScore,omitempty" json:"balanceScore,omitempty"`
	FlexibilityScore *float64 `bson:"flexibilityScore,omitempty" json:"flexibilityScore,omitempty"`

	Goals        string `bson:"goals,omitempty" json:"goals,omitempty"`
	Program      string `bson:"program,omitempty" json:"program,omitempty"`
	TrainerNotes string `bson:"trainerNotes,omitempty" json:"trainerNotes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
