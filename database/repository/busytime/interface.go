package busytimeRepo

import (
	"context"
	"time"

	"showdan/models"
)

// BusyTimeRepository stores users' busy ranges. Overlapping ranges are allowed.
type BusyTimeRepository interface {
	Insert(ctx context.Context, bt *models.BusyTime) error
	GetByID(ctx context.Context, id string) (*models.BusyTime, error)
	// ListOverlapping returns the owner's ranges whose [start, end) intersects [from, to),
	// ordered by start.
	ListOverlapping(ctx context.Context, ownerID string, from, to time.Time) ([]models.BusyTime, error)
	// SetBounds rewrites the start and end of a range.
	SetBounds(ctx context.Context, id string, start, end time.Time) error
	Delete(ctx context.Context, id string) error
}
