package offerRepo

import (
	"context"
	"time"

	"showdan/models"
)

// ThreadRepository stores negotiation threads. (eventId, professionalId) is unique.
type ThreadRepository interface {
	// Create returns database.ErrDuplicateKey when the pair already has a thread.
	Create(ctx context.Context, thread *models.OfferThread) error
	GetByID(ctx context.Context, id string) (*models.OfferThread, error)
	GetByPair(ctx context.Context, eventID, professionalID string) (*models.OfferThread, error)
	// Touch records the time of the latest message.
	Touch(ctx context.Context, id string, at time.Time) error
	// ListForParticipant returns threads where the user is the professional or the
	// event owner, most recently active first.
	ListForParticipant(ctx context.Context, userID string) ([]models.OfferThread, error)
}

// MessageRepository stores the append-only message logs.
type MessageRepository interface {
	Append(ctx context.Context, msg *models.OfferMessage) error
	// LatestPriced returns database.ErrNotFound when the thread has no priced message.
	LatestPriced(ctx context.Context, threadID string) (*models.OfferMessage, error)
	// Latest returns the last message of any kind.
	Latest(ctx context.Context, threadID string) (*models.OfferMessage, error)
	// Transition moves a message from one status to another. It returns
	// database.ErrConditionFailed when the message is no longer in status from.
	Transition(ctx context.Context, id string, from, to models.OfferStatus) error
	// RejectPendingForEvent rejects every pending message of the event except one.
	RejectPendingForEvent(ctx context.Context, eventID, exceptID string) (int, error)
	// ListByThread returns one page in log order and the thread's total message count.
	ListByThread(ctx context.Context, threadID string, skip, limit int) ([]models.OfferMessage, int, error)
	// CountByThread counts the messages of a thread.
	CountByThread(ctx context.Context, threadID string) (int, error)
	// ListByEvent returns every message of the event in log order.
	ListByEvent(ctx context.Context, eventID string) ([]models.OfferMessage, error)
}
