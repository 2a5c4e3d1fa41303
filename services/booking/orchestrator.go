package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"showdan/database"
	eventRepo "showdan/database/repository/event"
	offerRepo "showdan/database/repository/offer"
	userRepo "showdan/database/repository/user"
	"showdan/models"
	"showdan/services/currency"
	"showdan/services/negotiation"
	"showdan/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout            = "2006-01-02"
	clockLayout           = "15:04"
	maxBookingMessageSize = 500
)

// DefaultBookingOrchestrator implements BookingOrchestrator.
type DefaultBookingOrchestrator struct {
	Users    userRepo.UserRepository
	Events   eventRepo.EventRepository
	Threads  offerRepo.ThreadRepository
	Messages offerRepo.MessageRepository
	Store    negotiation.ThreadStore
	Machine  *negotiation.Machine
	Tx       database.Transactor
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

func (o *DefaultBookingOrchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// actor loads the acting account. Unknown or inactive accounts may not act.
func (o *DefaultBookingOrchestrator) actor(ctx context.Context, id string) (*models.User, error) {
	u, err := o.Users.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewForbidden("unknown user")
	}
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}
	if !u.IsActive {
		return nil, utils.NewForbidden("account is inactive")
	}
	return u, nil
}

func (o *DefaultBookingOrchestrator) event(ctx context.Context, id string) (*models.Event, error) {
	ev, err := o.Events.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFound("event not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	return ev, nil
}

func (o *DefaultBookingOrchestrator) threadByID(ctx context.Context, id string) (*models.OfferThread, error) {
	t, err := o.Threads.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFound("thread not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}
	return t, nil
}

func (o *DefaultBookingOrchestrator) threadByPair(ctx context.Context, eventID, professionalID string) (*models.OfferThread, error) {
	t, err := o.Threads.GetByPair(ctx, eventID, professionalID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFound("no negotiation between this event and professional")
	}
	if err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}
	return t, nil
}

// conflictOnRetryExhausted surfaces a transaction that kept losing write
// conflicts as a Conflict the caller may resubmit.
func conflictOnRetryExhausted(err error) error {
	if errors.Is(err, database.ErrWriteConflict) {
		return utils.NewConflict("the event changed while your request was processed, please retry")
	}
	return err
}

// SendOffer lets a professional propose a price. The first offer on a posted
// event opens the thread.
func (o *DefaultBookingOrchestrator) SendOffer(ctx context.Context, eventID, actorID string, input models.SendOfferInput) (*negotiation.Result, error) {
	if input.Amount == nil {
		return nil, utils.NewInvalidArgument("proposed amount is required")
	}
	if currency.Normalize(input.Currency) == "" {
		return nil, utils.NewInvalidArgument("proposed currency is required")
	}

	actor, err := o.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	event, err := o.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := negotiation.CheckSendOffer(*event, *actor); err != nil {
		return nil, err
	}

	draft := negotiation.Draft{
		SenderID: actor.ID,
		Role:     models.SenderProfessional,
		Body:     input.Message,
		Amount:   input.Amount,
		Currency: input.Currency,
	}
	if event.IsPosted {
		res, err := o.Machine.OpenAndSendPriced(ctx, event.ID, actor.ID, draft)
		return res, conflictOnRetryExhausted(err)
	}

	thread, err := o.threadByPair(ctx, event.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	res, err := o.Machine.SendPriced(ctx, event.ID, *thread, draft)
	return res, conflictOnRetryExhausted(err)
}

// CounterOffer lets the event owner answer with a price in the event currency.
func (o *DefaultBookingOrchestrator) CounterOffer(ctx context.Context, threadID, actorID string, input models.CounterOfferInput) (*negotiation.Result, error) {
	if input.Amount == nil {
		return nil, utils.NewInvalidArgument("proposed amount is required")
	}

	thread, err := o.threadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	event, err := o.event(ctx, thread.EventID)
	if err != nil {
		return nil, err
	}
	if err := negotiation.CheckCounter(*event, *thread, actorID); err != nil {
		return nil, err
	}
	actor, err := o.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	res, err := o.Machine.SendPriced(ctx, event.ID, *thread, negotiation.Draft{
		SenderID: actor.ID,
		Role:     models.SenderCreator,
		Body:     input.Message,
		Amount:   input.Amount,
		Currency: event.Currency,
	})
	return res, conflictOnRetryExhausted(err)
}

// Chat appends a plain message. The sender role follows the account type.
func (o *DefaultBookingOrchestrator) Chat(ctx context.Context, threadID, actorID string, input models.ChatInput) (*negotiation.Result, error) {
	thread, err := o.threadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	actor, err := o.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	res, err := o.Machine.Chat(ctx, *thread, negotiation.Draft{
		SenderID: actor.ID,
		Role:     actor.Role(),
		Body:     input.Message,
	})
	return res, conflictOnRetryExhausted(err)
}

func (o *DefaultBookingOrchestrator) AcceptOffer(ctx context.Context, eventID, professionalID, actorID string) (*models.OfferDecision, error) {
	if _, err := o.event(ctx, eventID); err != nil {
		return nil, err
	}
	thread, err := o.threadByPair(ctx, eventID, professionalID)
	if err != nil {
		return nil, err
	}
	decision, err := o.Machine.Accept(ctx, *thread, actorID)
	return decision, conflictOnRetryExhausted(err)
}

func (o *DefaultBookingOrchestrator) RejectOffer(ctx context.Context, eventID, professionalID, actorID string) (*models.OfferDecision, error) {
	if _, err := o.event(ctx, eventID); err != nil {
		return nil, err
	}
	thread, err := o.threadByPair(ctx, eventID, professionalID)
	if err != nil {
		return nil, err
	}
	decision, err := o.Machine.Reject(ctx, *thread, actorID)
	return decision, conflictOnRetryExhausted(err)
}

// CreateEvent posts a new event open for offers.
func (o *DefaultBookingOrchestrator) CreateEvent(ctx context.Context, actorID string, input models.CreateEventInput) (*models.Event, error) {
	actor, err := o.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, utils.NewInvalidArgument("name is required")
	}
	start, err := time.Parse(time.RFC3339, input.StartAt)
	if err != nil {
		return nil, utils.NewInvalidArgument("startAt must be an RFC3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, input.EndAt)
	if err != nil {
		return nil, utils.NewInvalidArgument("endAt must be an RFC3339 timestamp")
	}
	if !end.After(start) {
		return nil, utils.NewInvalidArgument("end must be after start")
	}
	if input.Budget != nil && *input.Budget < 0 {
		return nil, utils.NewInvalidArgument("budget must not be negative")
	}
	if input.AdvancePayment != nil {
		if *input.AdvancePayment < 0 {
			return nil, utils.NewInvalidArgument("advance payment must not be negative")
		}
		if input.Budget != nil && *input.AdvancePayment > *input.Budget {
			return nil, utils.NewInvalidArgument("advance payment cannot exceed budget")
		}
	}
	code := currency.Normalize(input.Currency)
	if code != "" && len(code) != 3 {
		return nil, utils.NewInvalidArgument("currency must be a three-letter code")
	}

	event := &models.Event{
		ID:             uuid.NewString(),
		OwnerID:        actor.ID,
		Name:           name,
		Location:       strings.TrimSpace(input.Location),
		StartAt:        start.UTC(),
		EndAt:          end.UTC(),
		Currency:       code,
		Budget:         roundPtr(input.Budget),
		AdvancePayment: roundPtr(input.AdvancePayment),
		IsPosted:       true,
		CreatedAt:      o.now().UTC(),
	}
	if err := o.Events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	o.Logger.Info("event created", zap.String("eventID", event.ID), zap.String("actorID", actor.ID))
	return event, nil
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := utils.RoundAmount(*v)
	return &r
}
