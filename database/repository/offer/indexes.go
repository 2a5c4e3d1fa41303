package offerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the thread indexes, including the (eventId, professionalId)
// uniqueness constraint get-or-create relies on.
func (r *MongoThreadRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}, {Key: "professionalId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_event_professional"),
		},
		{Keys: bson.D{{Key: "professionalId", Value: 1}, {Key: "lastMessageAt", Value: -1}}},
		{Keys: bson.D{{Key: "eventOwnerId", Value: 1}, {Key: "lastMessageAt", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create thread indexes: %w", err)
	}
	return nil
}

// EnsureIndexes creates the message indexes.
func (r *MongoMessageRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "threadId", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
