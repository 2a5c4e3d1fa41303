package eventRepo

import (
	"context"
	"time"

	"showdan/models"
)

// EventRepository defines methods for event data access.
type EventRepository interface {
	// Create inserts a new event.
	Create(ctx context.Context, event *models.Event) error
	// GetByID returns database.ErrNotFound when the event does not exist.
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// GetByIDs returns the events found, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]models.Event, error)
	// GuardOpen bumps the version of an open event and returns it. A locked event is
	// returned untouched. Inside a transaction the version bump makes any concurrent
	// lock of the same event conflict.
	GuardOpen(ctx context.Context, id string) (*models.Event, error)
	// Lock transitions an open event to locked. It returns database.ErrConditionFailed
	// when the event is already locked.
	Lock(ctx context.Context, id, threadID, professionalID string) error
	// ListForOwner returns the owner's events intersecting [from, to).
	ListForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error)
	// ListAcceptedFor returns locked events accepted for the professional intersecting [from, to).
	ListAcceptedFor(ctx context.Context, professionalID string, from, to time.Time) ([]models.Event, error)
}
