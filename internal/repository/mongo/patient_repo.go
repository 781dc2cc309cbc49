package mongo

import (
	"context"
	"errors"

	"stairs/gym-reports/internal/domain"
	"stairs/gym-reports/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const patientCollectionName = "patients"

// mongoPatientRepository implements repository.PatientRepository
type mongoPatientRepository struct {
	collection *mongo.Collection
}

// NewMongoPatientRepository creates a new patient repository.
func NewMongoPatientRepository(db *mongo.Database) repository.PatientRepository {
	return &mongoPatientRepository{
		collection: db.Collection(patientCollectionName),
	}
}

// GetByID retrieves a single patient.
func (r *mongoPatientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Patient, error) {
	var patient domain.Patient
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// ListActive retrieves all patients with Active status, sorted by name.
func (r *mongoPatientRepository) ListActive(ctx context.Context) ([]domain.Patient, error) {
	filter := bson.M{"status": domain.PatientActive}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	patients := []domain.Patient{}
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// EnsurePatientIndexes creates necessary indexes. Call during startup.
func EnsurePatientIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
