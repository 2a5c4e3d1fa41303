package userRepo

import (
	"context"
	"fmt"
	"time"

	"showdan/database"
	"showdan/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection("users")}
}

// GetByID retrieves a user by its ID, projecting only the fields this service reads.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	projection := bson.M{
		"id": 1, "email": 1, "firstName": 1, "lastName": 1,
		"accountType": 1, "isActive": 1, "currency": 1, "createdAt": 1,
	}
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(projection)).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, database.Translate(err))
	}
	return &user, nil
}

// Upsert writes the account keyed by id. Used by the seed command only; accounts
// are otherwise owned by the identity service.
func (r *MongoUserRepo) Upsert(ctx context.Context, u models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": u.ID}, u, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", u.ID, database.Translate(err))
	}
	return nil
}
