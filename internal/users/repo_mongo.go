package users

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "users"

type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("users: create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepo) Insert(ctx context.Context, u User) error {
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("users: insert: %w", err)
	}
	return nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (User, error) {
	// Credential material is projected out; principals never carry it.
	opts := options.FindOne().SetProjection(bson.D{{Key: "password", Value: 0}})
	var u User
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("users: find by id: %w", err)
	}
	return u, nil
}

func (r *MongoRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("users: find by email: %w", err)
	}
	return u, nil
}

func (r *MongoRepo) Update(ctx context.Context, u User) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: u.Name},
		{Key: "role", Value: u.Role},
		{Key: "active", Value: u.Active},
		{Key: "updated_at", Value: u.UpdatedAt},
	}}}
	res, err := r.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: u.ID}}, update)
	if err != nil {
		return fmt.Errorf("users: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "password", Value: hash}}}}
	res, err := r.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("users: update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) UpdatePermissions(ctx context.Context, id string, m map[string]map[string]bool) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "permissions", Value: m}}}}
	res, err := r.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("users: update permissions: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("users: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context) ([]User, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "password", Value: 0}}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer cur.Close(ctx)

	var out []User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	return out, nil
}
