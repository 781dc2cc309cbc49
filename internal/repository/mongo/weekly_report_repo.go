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

const weeklyReportCollectionName = "weekly_reports"

// mongoWeeklyReportRepository implements repository.WeeklyReportRepository
type mongoWeeklyReportRepository struct {
	collection *mongo.Collection
}

// NewMongoWeeklyReportRepository creates a new weekly report repository.
func NewMongoWeeklyReportRepository(db *mongo.Database) repository.WeeklyReportRepository {
	return &mongoWeeklyReportRepository{
		collection: db.Collection(weeklyReportCollectionName),
	}
}

// Create inserts a new weekly report.
func (r *mongoWeeklyReportRepository) Create(ctx context.Context, rep *domain.WeeklyReport) (primitive.ObjectID, error) {
	if rep.ReportID == "" || rep.PatientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("weekly report requires reportId and patientId")
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
func (r *mongoWeeklyReportRepository) FindByReportID(ctx context.Context, reportID string) (*domain.WeeklyReport, error) {
	var rep domain.WeeklyReport
	err := r.collection.FindOne(ctx, bson.M{"reportId": reportID}).Decode(&rep)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// ListByPatientSince retrieves the patient's weekly reports whose week start
// is on or after since, ascending.
func (r *mongoWeeklyReportRepository) ListByPatientSince(ctx context.Context, patientID primitive.ObjectID, since time.Time) ([]domain.WeeklyReport, error) {
	filter := bson.M{
		"patientId": patientID,
		"weekStart": bson.M{"$gte": since},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "weekStart", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []domain.WeeklyReport{}
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ListAll retrieves every weekly report.
func (r *mongoWeeklyReportRepository) ListAll(ctx context.Context) ([]domain.WeeklyReport, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []domain.WeeklyReport{}
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateTitle renames the report's canonical identifier.
func (r *mongoWeeklyReportRepository) UpdateTitle(ctx context.Context, id primitive.ObjectID, reportID string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reportId": reportID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWeeklyReportIndexes creates necessary indexes. The unique reportId
// index backs up the service-level existence check.
func EnsureWeeklyReportIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reportId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "patientId", Value: 1}, {Key: "weekStart", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
