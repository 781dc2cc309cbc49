package mongo

import (
	"context"
	"time"

	"stairs/gym-reports/internal/domain"
	"stairs/gym-reports/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const assessmentCollectionName = "assessments"

// mongoAssessmentRepository implements repository.AssessmentRepository
type mongoAssessmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssessmentRepository creates a new assessment repository.
func NewMongoAssessmentRepository(db *mongo.Database) repository.AssessmentRepository {
	return &mongoAssessmentRepository{
		collection: db.Collection(assessmentCollectionName),
	}
}

// ListByPatientSince retrieves assessments dated on or after since, most
// recent first, so the first element is the latest assessment.
func (r *mongoAssessmentRepository) ListByPatientSince(ctx context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.Assessment, error) {
	filter := bson.M{
		"patientId": patientID,
		"date":      bson.M{"$gte": since},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assessments := []domain.Assessment{}
	if err = cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

// ListAll retrieves every assessment.
func (r *mongoAssessmentRepository) ListAll(ctx context.Context) ([]domain.Assessment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assessments := []domain.Assessment{}
	if err = cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

// EnsureAssessmentIndexes creates necessary indexes. Call during startup.
func EnsureAssessmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
