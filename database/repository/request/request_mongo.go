package requestRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roadguard/database"
	"roadguard/models"
	"roadguard/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoServiceRequestRepo implements ServiceRequestRepository using MongoDB.
type MongoServiceRequestRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRequestRepo(db *mongo.Database) ServiceRequestRepository {
	repo := &MongoServiceRequestRepo{coll: db.Collection("service_requests")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create service request indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoServiceRequestRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetSparse(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoServiceRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	prepareRequest(req)
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create service request: %w", database.TranslateError(err))
	}
	return nil
}

func (r *MongoServiceRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to fetch service request with id %s: %w", id, database.TranslateError(err))
	}
	return &req, nil
}

func (r *MongoServiceRequestRepo) ListNewestFirst(ctx context.Context) ([]models.ServiceRequest, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := make([]models.ServiceRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode service requests: %w", err)
	}
	return requests, nil
}

// UpdateStatusIfChanged issues one conditional update. When the filter does not
// match, a follow-up read tells an unchanged status apart from an unknown id.
func (r *MongoServiceRequestRepo) UpdateStatusIfChanged(ctx context.Context, id string, status models.RequestStatus) (*models.ServiceRequest, bool, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$ne": status}}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.ServiceRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err == nil {
		return &req, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("failed to update status of service request %s: %w", id, err)
	}

	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, false, fmt.Errorf("failed to fetch service request with id %s: %w", id, database.TranslateError(err))
	}
	return &req, false, nil
}

func (r *MongoServiceRequestRepo) CountByStatus(ctx context.Context) (*models.RequestStats, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.RequestStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}

	stats := &models.RequestStats{}
	for _, row := range rows {
		addCount(stats, row.Status, row.Count)
	}
	return stats, nil
}

func addCount(stats *models.RequestStats, status models.RequestStatus, n int64) {
	stats.Total += n
	switch status {
	case models.StatusPending:
		stats.Pending += n
	case models.StatusAccepted:
		stats.Accepted += n
	case models.StatusRejected:
		stats.Rejected += n
	}
}

func prepareRequest(req *models.ServiceRequest) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	now := time.Now().UTC()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
}
