package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs fn as one atomic unit. Repositories called with the ctx passed
// to fn take part in the transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTransactor runs transactions on a replica-set client session.
type MongoTransactor struct {
	Client      *mongo.Client
	MaxAttempts int
}

func NewMongoTransactor(client *mongo.Client) *MongoTransactor {
	return &MongoTransactor{Client: client, MaxAttempts: 5}
}

// WithTransaction retries the whole unit on transient errors, so a caller that
// lost a write conflict re-reads the state the winner committed.
func (t *MongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := t.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = t.runOnce(ctx, fn)
		if err == nil || !(isTransient(err) || errors.Is(err, ErrWriteConflict)) {
			return err
		}
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w: %v", ErrWriteConflict, err)
}

func (t *MongoTransactor) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.Client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		err := sc.CommitTransaction(sc)
		for retries := 0; err != nil && retries < 3 && hasLabel(err, labelUnknownCommitResult); retries++ {
			err = sc.CommitTransaction(sc)
		}
		return err
	})
}

func hasLabel(err error, label string) bool {
	var labeled mongo.LabeledError
	return errors.As(err, &labeled) && labeled.HasErrorLabel(label)
}
