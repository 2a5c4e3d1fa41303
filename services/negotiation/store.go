package negotiation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"showdan/database"
	offerRepo "showdan/database/repository/offer"
	"showdan/models"
	"showdan/services/currency"
	"showdan/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyLength = 5000

// Draft is a message before it is appended.
type Draft struct {
	SenderID string
	Role     models.SenderRole
	Body     string
	Amount   *float64
	Currency string
}

// ThreadStore owns threads and their append-only logs.
type ThreadStore interface {
	GetOrCreateThread(ctx context.Context, event models.Event, professionalID string) (*models.OfferThread, bool, error)
	AppendMessage(ctx context.Context, event models.Event, thread models.OfferThread, draft Draft) (*models.OfferMessage, string, error)
	LatestPricedMessage(ctx context.Context, threadID string) (*models.OfferMessage, error)
}

// DefaultThreadStore implements ThreadStore.
type DefaultThreadStore struct {
	Threads  offerRepo.ThreadRepository
	Messages offerRepo.MessageRepository
	Resolver currency.Resolver
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewThreadStore(threads offerRepo.ThreadRepository, messages offerRepo.MessageRepository, resolver currency.Resolver, logger *zap.Logger) *DefaultThreadStore {
	return &DefaultThreadStore{
		Threads:  threads,
		Messages: messages,
		Resolver: resolver,
		Logger:   logger,
		Now:      time.Now,
	}
}

// GetOrCreateThread relies on the (event, professional) unique index: the loser
// of a concurrent insert reads back the winner's thread.
func (s *DefaultThreadStore) GetOrCreateThread(ctx context.Context, event models.Event, professionalID string) (*models.OfferThread, bool, error) {
	existing, err := s.Threads.GetByPair(ctx, event.ID, professionalID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, fmt.Errorf("get thread: %w", err)
	}

	thread := &models.OfferThread{
		ID:             uuid.NewString(),
		EventID:        event.ID,
		EventOwnerID:   event.OwnerID,
		ProfessionalID: professionalID,
		CreatedAt:      s.Now().UTC(),
	}
	err = s.Threads.Create(ctx, thread)
	switch {
	case err == nil:
		s.Logger.Info("offer thread created",
			zap.String("threadID", thread.ID),
			zap.String("eventID", event.ID),
			zap.String("professionalID", professionalID))
		return thread, true, nil
	case errors.Is(err, database.ErrDuplicateKey):
		existing, err = s.Threads.GetByPair(ctx, event.ID, professionalID)
		if err != nil {
			// Inside a transaction the failed insert aborts it; let the caller retry.
			return nil, false, fmt.Errorf("%w: re-read thread after duplicate insert: %v", database.ErrWriteConflict, err)
		}
		return existing, false, nil
	}
	return nil, false, fmt.Errorf("create thread: %w", err)
}

// AppendMessage snapshots the conversion into the event currency and appends.
// The returned warning is non-empty when a priced message could not be converted.
func (s *DefaultThreadStore) AppendMessage(ctx context.Context, event models.Event, thread models.OfferThread, draft Draft) (*models.OfferMessage, string, error) {
	body := strings.TrimSpace(draft.Body)
	if len(body) > maxBodyLength {
		return nil, "", utils.NewInvalidArgument("message must be at most %d characters", maxBodyLength)
	}
	if draft.Amount == nil && body == "" {
		return nil, "", utils.NewInvalidArgument("message must not be empty")
	}

	msg := &models.OfferMessage{
		ID:            newMessageID(),
		ThreadID:      thread.ID,
		EventID:       thread.EventID,
		SenderID:      draft.SenderID,
		SenderRole:    draft.Role,
		Body:          body,
		EventCurrency: event.Currency,
		CreatedAt:     s.Now().UTC(),
	}

	var warning string
	if draft.Amount != nil {
		amount := utils.RoundAmount(*draft.Amount)
		if amount <= 0 {
			return nil, "", utils.NewInvalidArgument("proposed amount must be positive")
		}
		code := currency.Normalize(draft.Currency)
		if code == "" {
			code = event.Currency
		}
		if code != "" && len(code) != 3 {
			return nil, "", utils.NewInvalidArgument("proposed currency must be a three-letter code")
		}
		msg.ProposedAmount = &amount
		msg.ProposedCurrency = code
		msg.Status = models.OfferPending

		conv := currency.Convert(ctx, s.Resolver, s.Logger, amount, code, event.Currency)
		msg.ConversionRate = conv.Rate
		msg.ConvertedAmount = conv.Converted
		warning = conv.Warning
	}

	if err := s.Messages.Append(ctx, msg); err != nil {
		return nil, "", fmt.Errorf("append message: %w", err)
	}
	if err := s.Threads.Touch(ctx, thread.ID, msg.CreatedAt); err != nil {
		return nil, "", fmt.Errorf("touch thread: %w", err)
	}
	return msg, warning, nil
}

func (s *DefaultThreadStore) LatestPricedMessage(ctx context.Context, threadID string) (*models.OfferMessage, error) {
	msg, err := s.Messages.LatestPriced(ctx, threadID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFound("no offer to decide on in this thread")
	}
	if err != nil {
		return nil, fmt.Errorf("latest priced message: %w", err)
	}
	return msg, nil
}

// newMessageID returns a time-ordered id so equal timestamps still sort in append order.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
