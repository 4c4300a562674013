package jobs

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "jobs"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection(collectionName)}
}

func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("jobs: create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepo) Insert(ctx context.Context, j Job) error {
	if _, err := r.col.InsertOne(ctx, j); err != nil {
		return fmt.Errorf("jobs: insert: %w", err)
	}
	return nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (Job, error) {
	var j Job
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("jobs: find: %w", err)
	}
	return j, nil
}

func (r *MongoRepo) Update(ctx context.Context, j Job) error {
	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: j.ID}}, j)
	if err != nil {
		return fmt.Errorf("jobs: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("jobs: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context) ([]Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("jobs: list: %w", err)
	}
	defer cur.Close(ctx)

	var out []Job
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("jobs: decode: %w", err)
	}
	return out, nil
}
