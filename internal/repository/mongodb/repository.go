package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
)

const (
	importsCollection     = "price_list_imports"
	submissionsCollection = "price_list_submissions"
)

// Repository defines the interface for import and submission history.
type Repository interface {
	SaveImport(ctx context.Context, record models.ImportRecord) error
	MarkImportApplied(ctx context.Context, id string, at time.Time) error
	SaveSubmission(ctx context.Context, record models.SubmissionRecord) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// SaveImport stores the trace of one spreadsheet import.
func (r *MongoDBRepository) SaveImport(ctx context.Context, record models.ImportRecord) error {
	if _, err := r.collection(importsCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert import record: %w", err)
	}
	return nil
}

// MarkImportApplied flags an import as merged into a form.
func (r *MongoDBRepository) MarkImportApplied(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{"applied": true, "applied_at": at}}
	res, err := r.collection(importsCollection).UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update import record %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("import record %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// SaveSubmission stores the outcome of one price-list submission.
func (r *MongoDBRepository) SaveSubmission(ctx context.Context, record models.SubmissionRecord) error {
	if _, err := r.collection(submissionsCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert submission record: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}
