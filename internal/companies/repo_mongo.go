package companies

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "companies"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection(collectionName)}
}

func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("companies: create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepo) Insert(ctx context.Context, c Company) error {
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("companies: insert: %w", err)
	}
	return nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (Company, error) {
	var c Company
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Company{}, ErrNotFound
	}
	if err != nil {
		return Company{}, fmt.Errorf("companies: find: %w", err)
	}
	return c, nil
}

func (r *MongoRepo) Update(ctx context.Context, c Company) error {
	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: c.ID}}, c)
	if err != nil {
		return fmt.Errorf("companies: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("companies: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context) ([]Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("companies: list: %w", err)
	}
	defer cur.Close(ctx)

	var out []Company
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("companies: decode: %w", err)
	}
	return out, nil
}
