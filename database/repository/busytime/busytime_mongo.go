package busytimeRepo

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

// MongoBusyTimeRepo implements BusyTimeRepository using MongoDB.
type MongoBusyTimeRepo struct {
	coll *mongo.Collection
}

func NewMongoBusyTimeRepo(db *mongo.Database) *MongoBusyTimeRepo {
	return &MongoBusyTimeRepo{coll: db.Collection("busy_times")}
}

func (r *MongoBusyTimeRepo) Insert(ctx context.Context, bt *models.BusyTime) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, bt); err != nil {
		return fmt.Errorf("failed to insert busy time: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoBusyTimeRepo) GetByID(ctx context.Context, id string) (*models.BusyTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bt models.BusyTime
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bt); err != nil {
		return nil, fmt.Errorf("failed to get busy time %s: %w", id, database.Translate(err))
	}
	return &bt, nil
}

func (r *MongoBusyTimeRepo) ListOverlapping(ctx context.Context, ownerID string, from, to time.Time) ([]models.BusyTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"ownerId": ownerID,
		"startAt": bson.M{"$lt": to},
		"endAt":   bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}, {Key: "id", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query busy times: %w", database.Translate(err))
	}
	defer cursor.Close(ctx)

	var out []models.BusyTime
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode busy times: %w", err)
	}
	return out, nil
}

func (r *MongoBusyTimeRepo) SetBounds(ctx context.Context, id string, start, end time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"startAt": start, "endAt": end}})
	if err != nil {
		return fmt.Errorf("failed to update busy time %s: %w", id, database.Translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update busy time %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoBusyTimeRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete busy time %s: %w", id, database.Translate(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete busy time %s: %w", id, database.ErrNotFound)
	}
	return nil
}
