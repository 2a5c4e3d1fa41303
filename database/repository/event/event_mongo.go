package eventRepo

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

// MongoEventRepo implements EventRepository using MongoDB.
type MongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo creates a new instance of EventRepository using MongoDB.
func NewMongoEventRepo(db *mongo.Database) *MongoEventRepo {
	return &MongoEventRepo{coll: db.Collection("events")}
}

func (r *MongoEventRepo) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event models.Event
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", id, database.Translate(err))
	}
	return &event, nil
}

func (r *MongoEventRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}}, nil)
}

func (r *MongoEventRepo) GuardOpen(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var event models.Event
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "isLocked": false},
		bson.M{"$inc": bson.M{"version": 1}},
		opts,
	).Decode(&event)
	if err == nil {
		return &event, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to guard event %s: %w", id, database.Translate(err))
	}
	// Either missing or already locked.
	return r.GetByID(ctx, id)
}

func (r *MongoEventRepo) Lock(ctx context.Context, id, threadID, professionalID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"isLocked":               true,
			"acceptedThreadId":       threadID,
			"acceptedProfessionalId": professionalID,
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "isLocked": false}, update)
	if err != nil {
		return fmt.Errorf("failed to lock event %s: %w", id, database.Translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("lock event %s: %w", id, database.ErrConditionFailed)
	}
	return nil
}

func (r *MongoEventRepo) ListForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"startAt": bson.M{"$lt": to},
		"endAt":   bson.M{"$gt": from},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}}))
}

func (r *MongoEventRepo) ListAcceptedFor(ctx context.Context, professionalID string, from, to time.Time) ([]models.Event, error) {
	filter := bson.M{
		"acceptedProfessionalId": professionalID,
		"isLocked":               true,
		"startAt":                bson.M{"$lt": to},
		"endAt":                  bson.M{"$gt": from},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}}))
}

func (r *MongoEventRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}
