package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"roadguard/database"
	"roadguard/models"
	"roadguard/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	repo := &MongoSettingsRepo{coll: db.Collection("admin_settings")}

	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()
	index := mongo.IndexModel{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := repo.coll.Indexes().CreateOne(ctx, index); err != nil {
		utils.GetLogger().Warn("failed to create settings index", zap.Error(err))
	}
	return repo
}

func (r *MongoSettingsRepo) Get(ctx context.Context) (*models.AdminSettings, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	defaults := models.DefaultAdminSettings()
	update := bson.M{"$setOnInsert": bson.M{
		"openForRequest": defaults.OpenForRequest,
		"updatedAt":      defaults.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var s models.AdminSettings
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"key": models.AdminSettingsKey}, update, opts).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to load admin settings: %w", err)
	}
	return &s, nil
}

func (r *MongoSettingsRepo) SetOpenForRequest(ctx context.Context, open bool) (*models.AdminSettings, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"openForRequest": open, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var s models.AdminSettings
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"key": models.AdminSettingsKey}, update, opts).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to update admin settings: %w", err)
	}
	return &s, nil
}
