package accountRepo

import (
	"context"
	"fmt"
	"strings"
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

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB.
func NewMongoAccountRepo(db *mongo.Database) AccountRepository {
	repo := &MongoAccountRepo{coll: db.Collection("accounts")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create account indexes", zap.Error(err))
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to fetch account with id %s: %w", id, database.TranslateError(err))
	}
	return &account, nil
}

func (r *MongoAccountRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Account, error) {
	out := make(map[string]models.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	// Listings only need the display fields.
	opts := options.Find().SetProjection(bson.M{"id": 1, "name": 1, "email": 1, "role": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var a models.Account
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		out[a.ID] = a
	}
	return out, cursor.Err()
}

func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to fetch account with email %s: %w", email, database.TranslateError(err))
	}
	return &account, nil
}

func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	prepareAccount(account)
	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", database.TranslateError(err))
	}
	return nil
}

// prepareAccount fills identity and timestamps and normalizes the email.
func prepareAccount(account *models.Account) {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
}
