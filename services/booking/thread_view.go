package booking

import (
	"context"
	"errors"
	"fmt"

	"showdan/database"
	"showdan/models"
	"showdan/services/negotiation"
	"showdan/utils"
)

// OpenThread returns the actor's thread on an event with the newest
// MaxPageSize messages of its log and what the actor may do next. A
// professional opening an open, posted event starts their thread; the owner
// must name the professional.
func (o *DefaultBookingOrchestrator) OpenThread(ctx context.Context, eventID, actorID, professionalID string) (*models.ThreadView, error) {
	actor, err := o.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	event, err := o.event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var (
		thread  *models.OfferThread
		created bool
	)
	switch {
	case actor.ID == event.OwnerID:
		if professionalID == "" {
			return nil, utils.NewInvalidArgument("professional_id is required for the event owner")
		}
		thread, err = o.threadByPair(ctx, event.ID, professionalID)

	case actor.IsProfessional():
		thread, err = o.threadByPair(ctx, event.ID, actor.ID)
		if utils.IsKind(err, utils.KindNotFound) {
			switch {
			case event.IsLocked:
				err = utils.NewConflict(negotiation.MsgEventLocked)
			case event.IsPosted:
				thread, created, err = o.Store.GetOrCreateThread(ctx, *event, actor.ID)
			default:
				err = utils.NewNotFound(negotiation.MsgEventNotPosted)
			}
		}

	default:
		return nil, utils.NewForbidden(negotiation.MsgWrongRole)
	}
	if err != nil {
		return nil, err
	}

	total, err := o.Messages.CountByThread(ctx, thread.ID)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	msgs, _, err := o.Messages.ListByThread(ctx, thread.ID, max(0, total-negotiation.MaxPageSize), negotiation.MaxPageSize)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if msgs == nil {
		msgs = []models.OfferMessage{}
	}

	isCreator := actor.ID == event.OwnerID
	isProfessional := actor.ID == thread.ProfessionalID
	return &models.ThreadView{
		Thread:         *thread,
		Event:          *event,
		Messages:       msgs,
		Created:        created,
		IsCreator:      isCreator,
		IsProfessional: isProfessional,
		CanSendOffer:   isProfessional && !event.IsLocked,
		CanSendCounter: isCreator && !event.IsLocked,
		CanMessage:     negotiation.CanChat(*event, *thread, actor.ID),
	}, nil
}
