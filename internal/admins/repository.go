package admins

import (
	"context"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines persistence operations for admin credentials
type Repository interface {
	GetByName(ctx context.Context, name string) (*models.Admin, error)
	UpsertByName(ctx context.Context, a *models.Admin) (*models.Admin, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new repository for the given collection
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) GetByName(ctx context.Context, name string) (*models.Admin, error) {
	var a models.Admin
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) UpsertByName(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	filter := bson.M{"name": a.Name}
	repl := bson.M{"$set": bson.M{
		"passwordHash": a.PasswordHash,
		"updatedAt":    a.UpdatedAt,
		"createdAt":    a.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.Admin
	if err := r.col.FindOneAndUpdate(ctx, filter, repl, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Shouldn't happen because of upsert, but handle gracefully
			return a, nil
		}
		return nil, err
	}
	return &updated, nil
}
