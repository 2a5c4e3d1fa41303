package booking

import (
	"context"

	"showdan/models"
	"showdan/services/negotiation"
)

// BookingOrchestrator is the entry point for negotiation and booking.
type BookingOrchestrator interface {
	CreateEvent(ctx context.Context, actorID string, input models.CreateEventInput) (*models.Event, error)
	OpenThread(ctx context.Context, eventID, actorID, professionalID string) (*models.ThreadView, error)
	SendOffer(ctx context.Context, eventID, actorID string, input models.SendOfferInput) (*negotiation.Result, error)
	CounterOffer(ctx context.Context, threadID, actorID string, input models.CounterOfferInput) (*negotiation.Result, error)
	Chat(ctx context.Context, threadID, actorID string, input models.ChatInput) (*negotiation.Result, error)
	AcceptOffer(ctx context.Context, eventID, professionalID, actorID string) (*models.OfferDecision, error)
	RejectOffer(ctx context.Context, eventID, professionalID, actorID string) (*models.OfferDecision, error)
	QuickBooking(ctx context.Context, actorID string, input models.QuickBookingInput) (*models.QuickBookingResult, error)
}
