package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"showdan/database"
	"showdan/models"
	"showdan/services/negotiation"
	"showdan/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuickBooking creates a private event from a professional's calendar and opens
// the thread with them. The professional's busy time is not reserved.
func (o *DefaultBookingOrchestrator) QuickBooking(ctx context.Context, actorID string, input models.QuickBookingInput) (*models.QuickBookingResult, error) {
	message := strings.TrimSpace(input.Message)
	if len(message) > maxBookingMessageSize {
		return nil, utils.NewInvalidArgument("message must be at most %d characters", maxBookingMessageSize)
	}
	start, end, err := o.bookingWindow(input)
	if err != nil {
		return nil, err
	}

	actor, err := o.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	pro, err := o.Users.GetByID(ctx, input.ProfessionalID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, utils.NewNotFound("professional not found")
	case err != nil:
		return nil, fmt.Errorf("load professional: %w", err)
	case !pro.IsActive || !pro.IsProfessional():
		return nil, utils.NewNotFound("professional not found")
	case pro.ID == actor.ID:
		return nil, utils.NewInvalidArgument("you cannot create a booking request with yourself")
	}

	event := models.Event{
		ID:        uuid.NewString(),
		OwnerID:   actor.ID,
		Name:      "Booking request with " + pro.DisplayName(),
		StartAt:   start.UTC(),
		EndAt:     end.UTC(),
		Currency:  actor.Currency,
		IsPosted:  false,
		CreatedAt: o.now().UTC(),
	}

	var thread *models.OfferThread
	err = o.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := o.Events.Create(ctx, &event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		var err error
		if thread, _, err = o.Store.GetOrCreateThread(ctx, event, pro.ID); err != nil {
			return err
		}
		if message == "" {
			return nil
		}
		_, _, err = o.Store.AppendMessage(ctx, event, *thread, negotiation.Draft{
			SenderID: actor.ID,
			Role:     models.SenderCreator,
			Body:     message,
		})
		return err
	})
	if err != nil {
		return nil, conflictOnRetryExhausted(err)
	}

	o.Logger.Info("quick booking created",
		zap.String("eventID", event.ID),
		zap.String("threadID", thread.ID),
		zap.String("actorID", actor.ID),
		zap.String("professionalID", pro.ID))

	return &models.QuickBookingResult{
		ThreadID:     thread.ID,
		EventID:      event.ID,
		Professional: pro.Brief(),
		StartAt:      event.StartAt,
		EndAt:        event.EndAt,
		Message:      "Booking request created successfully",
	}, nil
}

// bookingWindow combines the date and clock times in the calendar zone.
func (o *DefaultBookingOrchestrator) bookingWindow(input models.QuickBookingInput) (time.Time, time.Time, error) {
	invalid := utils.NewInvalidArgument("invalid date or time format, use YYYY-MM-DD for date and HH:MM for time")

	date, err := time.ParseInLocation(dateLayout, input.Date, o.Location)
	if err != nil {
		return time.Time{}, time.Time{}, invalid
	}
	startClock, err := time.Parse(clockLayout, input.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, invalid
	}
	endClock, err := time.Parse(clockLayout, input.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, invalid
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startClock.Hour(), startClock.Minute(), 0, 0, o.Location)
	end := time.Date(date.Year(), date.Month(), date.Day(), endClock.Hour(), endClock.Minute(), 0, 0, o.Location)
	if !end.After(start) {
		return time.Time{}, time.Time{}, utils.NewInvalidArgument("end time must be after start time")
	}

	today := o.now().In(o.Location)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, o.Location)
	if date.Before(today) {
		return time.Time{}, time.Time{}, utils.NewInvalidArgument("you cannot create a booking request in the past")
	}
	return start, end, nil
}
