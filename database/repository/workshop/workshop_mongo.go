package workshopRepo

import (
	"context"
	"fmt"
	"regexp"
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

// MongoWorkshopRepo implements WorkshopRepository using MongoDB.
type MongoWorkshopRepo struct {
	coll *mongo.Collection
}

func NewMongoWorkshopRepo(db *mongo.Database) WorkshopRepository {
	repo := &MongoWorkshopRepo{coll: db.Collection("workshops")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create workshop indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoWorkshopRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// At most one workshop per worker.
		{Keys: bson.D{{Key: "workerId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "ratingAvg", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoWorkshopRepo) Create(ctx context.Context, w *models.Workshop) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	prepareWorkshop(w)
	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("failed to create workshop: %w", database.TranslateError(err))
	}
	return nil
}

func (r *MongoWorkshopRepo) findOne(ctx context.Context, filter bson.M) (*models.Workshop, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var w models.Workshop
	if err := r.coll.FindOne(ctx, filter).Decode(&w); err != nil {
		return nil, database.TranslateError(err)
	}
	return &w, nil
}

func (r *MongoWorkshopRepo) GetByID(ctx context.Context, id string) (*models.Workshop, error) {
	w, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workshop with id %s: %w", id, err)
	}
	return w, nil
}

func (r *MongoWorkshopRepo) GetByWorkerID(ctx context.Context, workerID string) (*models.Workshop, error) {
	w, err := r.findOne(ctx, bson.M{"workerId": workerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workshop for worker %s: %w", workerID, err)
	}
	return w, nil
}

func (r *MongoWorkshopRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Workshop, error) {
	out := make(map[string]models.Workshop, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1, "name": 1, "address": 1, "workerId": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workshops: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var w models.Workshop
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode workshop: %w", err)
		}
		out[w.ID] = w
	}
	return out, cursor.Err()
}

func (r *MongoWorkshopRepo) Find(ctx context.Context, filter WorkshopFilter) ([]models.Workshop, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.NameContains != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.NameContains), "$options": "i"}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	defer cursor.Close(ctx)

	workshops := make([]models.Workshop, 0)
	if err := cursor.All(ctx, &workshops); err != nil {
		return nil, fmt.Errorf("failed to decode workshops: %w", err)
	}
	return workshops, nil
}

func (r *MongoWorkshopRepo) UpdateByWorker(ctx context.Context, workerID string, patch models.WorkshopPatch) (*models.Workshop, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	set := patchToSet(patch)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var w models.Workshop
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"workerId": workerID}, bson.M{"$set": set}, opts).Decode(&w)
	if err != nil {
		return nil, fmt.Errorf("failed to update workshop for worker %s: %w", workerID, database.TranslateError(err))
	}
	return &w, nil
}

func (r *MongoWorkshopRepo) SetRating(ctx context.Context, id string, agg models.RatingAggregate) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"ratingAvg": agg.Avg, "reviewsCount": agg.Count}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set rating on workshop %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("workshop %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func patchToSet(p models.WorkshopPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Location != nil {
		set["location"] = p.Location
	}
	if p.OwnerContact != nil {
		set["ownerContact"] = *p.OwnerContact
	}
	if p.Social != nil {
		set["social"] = *p.Social
	}
	if p.Images != nil {
		set["images"] = p.Images
	}
	if p.Services != nil {
		set["services"] = p.Services
	}
	return set
}

func prepareWorkshop(w *models.Workshop) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Status == "" {
		w.Status = models.WorkshopOpen
	}
	if w.Images == nil {
		w.Images = []string{}
	}
	if w.Services == nil {
		w.Services = []models.OfferedService{}
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
}
