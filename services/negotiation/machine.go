package negotiation

import (
	"context"
	"errors"
	"fmt"

	"showdan/database"
	eventRepo "showdan/database/repository/event"
	offerRepo "showdan/database/repository/offer"
	"showdan/models"
	"showdan/utils"

	"go.uber.org/zap"
)

// Machine applies the offer transitions. Every transition runs in one transaction
// and re-reads the event inside it, so a caller that read a stale Open state
// still fails with a conflict.
type Machine struct {
	Events   eventRepo.EventRepository
	Messages offerRepo.MessageRepository
	Store    ThreadStore
	Tx       database.Transactor
	Logger   *zap.Logger
}

func NewMachine(events eventRepo.EventRepository, messages offerRepo.MessageRepository, store ThreadStore, tx database.Transactor, logger *zap.Logger) *Machine {
	return &Machine{Events: events, Messages: messages, Store: store, Tx: tx, Logger: logger}
}

// Result is an appended message and its conversion warning, if any.
type Result struct {
	Message models.OfferMessage `json:"message"`
	Warning string              `json:"warning,omitempty"`
}

// SendPriced appends a priced message while the event is open. GuardOpen's write
// makes a concurrent accept of the same event conflict with this transaction.
func (m *Machine) SendPriced(ctx context.Context, eventID string, thread models.OfferThread, draft Draft) (*Result, error) {
	return m.sendPriced(ctx, eventID, draft, func(context.Context, models.Event) (*models.OfferThread, error) {
		return &thread, nil
	})
}

// OpenAndSendPriced starts the professional's thread if needed and appends their
// offer in the same transaction, so an event locked in the meantime keeps no
// empty thread.
func (m *Machine) OpenAndSendPriced(ctx context.Context, eventID, professionalID string, draft Draft) (*Result, error) {
	return m.sendPriced(ctx, eventID, draft, func(ctx context.Context, event models.Event) (*models.OfferThread, error) {
		thread, _, err := m.Store.GetOrCreateThread(ctx, event, professionalID)
		return thread, err
	})
}

func (m *Machine) sendPriced(ctx context.Context, eventID string, draft Draft, threadFor func(context.Context, models.Event) (*models.OfferThread, error)) (*Result, error) {
	if draft.Amount == nil {
		return nil, utils.NewInvalidArgument("proposed amount is required")
	}

	var res Result
	err := m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := m.Events.GuardOpen(ctx, eventID)
		if err != nil {
			return eventError(err)
		}
		if event.IsLocked {
			return utils.NewConflict(MsgEventLocked)
		}
		thread, err := threadFor(ctx, *event)
		if err != nil {
			return err
		}
		msg, warning, err := m.Store.AppendMessage(ctx, *event, *thread, draft)
		if err != nil {
			return err
		}
		res = Result{Message: *msg, Warning: warning}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("offer sent",
		zap.String("eventID", eventID),
		zap.String("threadID", res.Message.ThreadID),
		zap.String("actorID", draft.SenderID),
		zap.String("role", string(draft.Role)),
		zap.Float64("amount", *res.Message.ProposedAmount),
		zap.String("currency", res.Message.ProposedCurrency))
	return &res, nil
}

// Chat appends an unpriced message after re-checking who may still talk.
func (m *Machine) Chat(ctx context.Context, thread models.OfferThread, draft Draft) (*Result, error) {
	draft.Amount = nil

	var res Result
	err := m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := m.Events.GetByID(ctx, thread.EventID)
		if err != nil {
			return eventError(err)
		}
		if err := CheckChat(*event, thread, draft.SenderID); err != nil {
			return err
		}
		msg, _, err := m.Store.AppendMessage(ctx, *event, thread, draft)
		if err != nil {
			return err
		}
		res = Result{Message: *msg}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Accept is the only Open to Locked transition. The accepted message, the lock
// and the rejection of every other pending offer of the event commit together.
func (m *Machine) Accept(ctx context.Context, thread models.OfferThread, actorID string) (*models.OfferDecision, error) {
	var decision models.OfferDecision
	err := m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := m.Events.GetByID(ctx, thread.EventID)
		if err != nil {
			return eventError(err)
		}
		latest, err := m.Store.LatestPricedMessage(ctx, thread.ID)
		if err != nil {
			return err
		}
		if err := CheckDecision(*event, thread, *latest, actorID, true); err != nil {
			return err
		}

		if err := m.Messages.Transition(ctx, latest.ID, models.OfferPending, models.OfferAccepted); err != nil {
			return conditionError(err, MsgOfferNotPending)
		}
		if err := m.Events.Lock(ctx, event.ID, thread.ID, thread.ProfessionalID); err != nil {
			return conditionError(err, MsgAcceptedByOther)
		}
		rejected, err := m.Messages.RejectPendingForEvent(ctx, event.ID, latest.ID)
		if err != nil {
			return fmt.Errorf("cascade reject: %w", err)
		}

		latest.Status = models.OfferAccepted
		decision = models.OfferDecision{
			Message:          *latest,
			EventLocked:      true,
			AcceptedThreadID: thread.ID,
			ProfessionalID:   thread.ProfessionalID,
			CascadeRejected:  rejected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("offer accepted",
		zap.String("eventID", thread.EventID),
		zap.String("threadID", thread.ID),
		zap.String("professionalID", thread.ProfessionalID),
		zap.String("messageID", decision.Message.ID),
		zap.Int("cascadeRejected", decision.CascadeRejected))
	return &decision, nil
}

// Reject declines the latest pending priced message. The event stays as it is.
func (m *Machine) Reject(ctx context.Context, thread models.OfferThread, actorID string) (*models.OfferDecision, error) {
	var decision models.OfferDecision
	err := m.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := m.Events.GetByID(ctx, thread.EventID)
		if err != nil {
			return eventError(err)
		}
		latest, err := m.Store.LatestPricedMessage(ctx, thread.ID)
		if err != nil {
			return err
		}
		if err := CheckDecision(*event, thread, *latest, actorID, false); err != nil {
			return err
		}
		if err := m.Messages.Transition(ctx, latest.ID, models.OfferPending, models.OfferRejected); err != nil {
			return conditionError(err, MsgOfferNotPending)
		}

		latest.Status = models.OfferRejected
		decision = models.OfferDecision{
			Message:          *latest,
			EventLocked:      event.IsLocked,
			AcceptedThreadID: event.AcceptedThreadID,
			ProfessionalID:   thread.ProfessionalID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("offer rejected",
		zap.String("eventID", thread.EventID),
		zap.String("threadID", thread.ID),
		zap.String("messageID", decision.Message.ID))
	return &decision, nil
}

func eventError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFound("event not found")
	}
	return fmt.Errorf("load event: %w", err)
}

func conditionError(err error, msg string) error {
	if errors.Is(err, database.ErrConditionFailed) {
		return utils.NewConflict("%s", msg)
	}
	return err
}
