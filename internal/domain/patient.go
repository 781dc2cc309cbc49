package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PatientStatus mirrors the Status select on the patient record.
type PatientStatus string

const (
	PatientActive   PatientStatus = "Active"
	PatientInactive PatientStatus = "Inactive"
)

// Patient represents a gym patient record in the document store.
type Patient struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Status PatientStatus      `bson:"status" json:"status"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone  string             `bson:"phone,omitempty" json:"phone,omitempty"`

	// Properties carries the front-end's flexible fields, including the
	// display-id candidates probed by the naming package.
	Properties Properties `bson:"properties,omitempty" json:"properties,omitempty"`

	// Measurements are updated by trainers after assessments.
	Measurements Measurements `bson:"measurements,omitempty" json:"measurements,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Measurements holds the current body measurements, all optional.
type Measurements struct {
	WeightKg *float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	HeightCm *float64 `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	ChestCm  *float64 `bson:"chestCm,omitempty" json:"chestCm,omitempty"`
	WaistCm  *float64 `bson:"waistCm,omitempty" json:"waistCm,omitempty"`
	HipsCm   *float64 `bson:"hipsCm,omitempty" json:"hipsCm,omitempty"`
	ThighCm  *float64 `bson:"thighCm,omitempty" json:"thighCm,omitempty"`
	ArmCm    *float64 `bson:"armCm,omitempty" json:"armCm,omitempty"`
}

// Trainer represents a trainer record in the document store.
type Trainer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Properties Properties         `bson:"properties,omitempty" json:"properties,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
