package offerRepo

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

// MongoThreadRepo implements ThreadRepository using MongoDB.
type MongoThreadRepo struct {
	coll *mongo.Collection
}

func NewMongoThreadRepo(db *mongo.Database) *MongoThreadRepo {
	return &MongoThreadRepo{coll: db.Collection("offer_threads")}
}

func (r *MongoThreadRepo) Create(ctx context.Context, thread *models.OfferThread) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, thread); err != nil {
		return fmt.Errorf("failed to create thread: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoThreadRepo) GetByID(ctx context.Context, id string) (*models.OfferThread, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoThreadRepo) GetByPair(ctx context.Context, eventID, professionalID string) (*models.OfferThread, error) {
	return r.findOne(ctx, bson.M{"eventId": eventID, "professionalId": professionalID})
}

func (r *MongoThreadRepo) findOne(ctx context.Context, filter bson.M) (*models.OfferThread, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var thread models.OfferThread
	if err := r.coll.FindOne(ctx, filter).Decode(&thread); err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", database.Translate(err))
	}
	return &thread, nil
}

func (r *MongoThreadRepo) Touch(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$max": bson.M{"lastMessageAt": at}})
	if err != nil {
		return fmt.Errorf("failed to touch thread %s: %w", id, database.Translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("touch thread %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoThreadRepo) ListForParticipant(ctx context.Context, userID string) ([]models.OfferThread, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"professionalId": userID},
		bson.M{"eventOwnerId": userID},
	}}
	opts := options.Find().SetSort(bson.D{
		{Key: "lastMessageAt", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer cursor.Close(ctx)

	var threads []models.OfferThread
	if err := cursor.All(ctx, &threads); err != nil {
		return nil, fmt.Errorf("failed to decode threads: %w", err)
	}
	return threads, nil
}
