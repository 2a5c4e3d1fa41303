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

var logOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}}
var reverseLogOrder = bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}}

// MongoMessageRepo implements MessageRepository using MongoDB.
type MongoMessageRepo struct {
	coll *mongo.Collection
}

func NewMongoMessageRepo(db *mongo.Database) *MongoMessageRepo {
	return &MongoMessageRepo{coll: db.Collection("offer_messages")}
}

func (r *MongoMessageRepo) Append(ctx context.Context, msg *models.OfferMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to append message: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoMessageRepo) LatestPriced(ctx context.Context, threadID string) (*models.OfferMessage, error) {
	return r.latest(ctx, bson.M{"threadId": threadID, "proposedAmount": bson.M{"$exists": true, "$ne": nil}})
}

func (r *MongoMessageRepo) Latest(ctx context.Context, threadID string) (*models.OfferMessage, error) {
	return r.latest(ctx, bson.M{"threadId": threadID})
}

func (r *MongoMessageRepo) latest(ctx context.Context, filter bson.M) (*models.OfferMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var msg models.OfferMessage
	opts := options.FindOne().SetSort(reverseLogOrder)
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&msg); err != nil {
		return nil, fmt.Errorf("failed to get latest message: %w", database.Translate(err))
	}
	return &msg, nil
}

func (r *MongoMessageRepo) Transition(ctx context.Context, id string, from, to models.OfferStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return fmt.Errorf("failed to update message %s: %w", id, database.Translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("message %s is not %s: %w", id, from, database.ErrConditionFailed)
	}
	return nil
}

func (r *MongoMessageRepo) RejectPendingForEvent(ctx context.Context, eventID, exceptID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"eventId": eventID, "status": models.OfferPending, "id": bson.M{"$ne": exceptID}},
		bson.M{"$set": bson.M{"status": models.OfferRejected}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reject pending offers of event %s: %w", eventID, database.Translate(err))
	}
	return int(res.ModifiedCount), nil
}

func (r *MongoMessageRepo) ListByThread(ctx context.Context, threadID string, skip, limit int) ([]models.OfferMessage, int, error) {
	total, err := r.CountByThread(ctx, threadID)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(logOrder).SetSkip(int64(skip)).SetLimit(int64(limit))
	msgs, err := r.find(ctx, bson.M{"threadId": threadID}, opts)
	if err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

func (r *MongoMessageRepo) CountByThread(ctx context.Context, threadID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"threadId": threadID})
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return int(n), nil
}

func (r *MongoMessageRepo) ListByEvent(ctx context.Context, eventID string) ([]models.OfferMessage, error) {
	return r.find(ctx, bson.M{"eventId": eventID}, options.Find().SetSort(logOrder))
}

func (r *MongoMessageRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.OfferMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.OfferMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return msgs, nil
}
