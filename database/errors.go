package database

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error labels, see the MongoDB transactions specification.
const (
	labelTransientTransaction = "TransientTransactionError"
	labelUnknownCommitResult  = "UnknownTransactionCommitResult"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrWriteConflict   = errors.New("write conflict")
	ErrConditionFailed = errors.New("document no longer matches the expected state")
)

// Translate maps driver errors to the package sentinels. Other errors pass through.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	case isTransient(err):
		return ErrWriteConflict
	}
	return err
}

func isTransient(err error) bool {
	var labeled mongo.LabeledError
	if errors.As(err, &labeled) {
		return labeled.HasErrorLabel(labelTransientTransaction) ||
			labeled.HasErrorLabel(labelUnknownCommitResult)
	}
	return false
}
