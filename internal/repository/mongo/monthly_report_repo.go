package mongo

import (
	"context"
	"errors"
	"time"

	"stairs/gym-reports/internal/domain"
	"stairs/gym-reports/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const monthlyReportCollectionName = "monthly_reports"

// mongoMonthlyReportRepository implements repository.MonthlyReportRepository
type mongoMonthlyReportRepository struct {
	collection *mongo.Collection
}

// NewMongoMonthlyReportRepository creates a new monthly report repository.
func NewMongoMonthlyReportRepository(db *mongo.Database) repository.MonthlyReportRepository {
	return &mongoMonthlyReportRepository{
		collection: db.Collection(monthlyReportCollectionName),
	}
}

// Create inserts a new monthly report.
func (r *mongoMonthlyReportRepository) Create(ctx context.Context, rep *domain.MonthlyReport) (primitive.ObjectID, error) {
	if rep.ReportID == "" || rep.PatientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("monthly report requires reportId and patientId")
	}
	rep.ID = primitive.NewObjectID()
	if rep.GeneratedAt.IsZero() {
		rep.GeneratedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, rep)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrAlreadyExists
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted report ID")
	}
	return insertedID, nil
}

// FindByReportID looks a report up by its canonical identifier.
func (r *mongoMonthlyReportRepository) FindByReportID(ctx context.Context, reportID string) (*domain.MonthlyReport, error) {
	var rep domain.MonthlyReport
	err := r.collection.FindOne(ctx, bson.M{"reportId": reportID}).Decode(&rep)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// ListAll retrieves every monthly report.
func (r *mongoMonthlyReportRepository) ListAll(ctx context.Context) ([]domain.MonthlyReport, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []domain.MonthlyReport{}
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateTitle renames the report's canonical identifier.
func (r *mongoMonthlyReportRepository) UpdateTitle(ctx context.Context, id primitive.ObjectID, reportID string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reportId": reportID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMonthlyReportIndexes creates necessary indexes.
func EnsureMonthlyReportIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reportId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "patientId", Value: 1}, {Key: "monthStart", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
