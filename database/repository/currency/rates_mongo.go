package currencyRepo

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

// MongoRateRepo reads exchange rates maintained by the currency admin.
type MongoRateRepo struct {
	coll *mongo.Collection
}

func NewMongoRateRepo(db *mongo.Database) *MongoRateRepo {
	return &MongoRateRepo{coll: db.Collection("exchange_rates")}
}

func (r *MongoRateRepo) Lookup(ctx context.Context, from, to string) (*models.ExchangeRate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rate models.ExchangeRate
	if err := r.coll.FindOne(ctx, bson.M{"from": from, "to": to}).Decode(&rate); err != nil {
		return nil, fmt.Errorf("failed to look up rate %s->%s: %w", from, to, database.Translate(err))
	}
	return &rate, nil
}

func (r *MongoRateRepo) Upsert(ctx context.Context, rate models.ExchangeRate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rate.UpdatedAt.IsZero() {
		rate.UpdatedAt = time.Now().UTC()
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"from": rate.From, "to": rate.To},
		bson.M{"$set": rate},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate %s->%s: %w", rate.From, rate.To, err)
	}
	return nil
}

// EnsureIndexes makes each direction unique.
func (r *MongoRateRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "from", Value: 1}, {Key: "to", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create rate indexes: %w", err)
	}
	return nil
}
