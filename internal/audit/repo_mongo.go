package audit

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "audit_logs"

// MongoRepo persists audit entries in an insert-only collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the query indexes. Call once at startup.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "resource", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("audit: create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepo) Append(ctx context.Context, e Entry) error {
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("audit: insert: %w", err)
	}
	return nil
}

// List returns entries newest first, up to limit (0 means no limit).
func (r *MongoRepo) List(ctx context.Context, limit int64) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("audit: find: %w", err)
	}
	defer cur.Close(ctx)

	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("audit: decode: %w", err)
	}
	return out, nil
}
