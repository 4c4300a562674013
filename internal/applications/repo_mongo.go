package applications

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "applications"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection(collectionName)}
}

func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "applicant_email", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("applications: create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepo) Insert(ctx context.Context, a Application) error {
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("applications: insert: %w", err)
	}
	return nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (Application, error) {
	var a Application
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Application{}, ErrNotFound
	}
	if err != nil {
		return Application{}, fmt.Errorf("applications: find: %w", err)
	}
	return a, nil
}

func (r *MongoRepo) Update(ctx context.Context, a Application) error {
	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: a.ID}}, a)
	if err != nil {
		return fmt.Errorf("applications: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("applications: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context) ([]Application, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	return r.find(ctx, bson.D{{Key: "job_id", Value: jobID}})
}

func (r *MongoRepo) find(ctx context.Context, filter bson.D) ([]Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("applications: find: %w", err)
	}
	defer cur.Close(ctx)

	var out []Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("applications: decode: %w", err)
	}
	return out, nil
}
