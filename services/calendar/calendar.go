package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	eventRepo "showdan/database/repository/event"
	"showdan/models"
	"showdan/services/availability"
	"showdan/utils"
)

// CalendarService merges a user's events and busy ranges over a period.
type CalendarService struct {
	Events       eventRepo.EventRepository
	Availability availability.AvailabilityService
	Location     *time.Location
}

func NewCalendarService(events eventRepo.EventRepository, avail availability.AvailabilityService, loc *time.Location) *CalendarService {
	return &CalendarService{Events: events, Availability: avail, Location: loc}
}

// Month covers the whole calendar month in the configured zone.
func (s *CalendarService) Month(ctx context.Context, actorID string, year, month int) (*models.CalendarView, error) {
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return nil, utils.NewInvalidArgument("year and month are out of range")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.Location)
	return s.view(ctx, actorID, from, from.AddDate(0, 1, 0))
}

// Day covers one calendar day given as YYYY-MM-DD.
func (s *CalendarService) Day(ctx context.Context, actorID, date string) (*models.CalendarView, error) {
	d, err := time.ParseInLocation("2006-01-02", date, s.Location)
	if err != nil {
		return nil, utils.NewInvalidArgument("date must be YYYY-MM-DD")
	}
	from, _ := availability.DayBounds(d, s.Location)
	return s.view(ctx, actorID, from, from.AddDate(0, 0, 1))
}

func (s *CalendarService) view(ctx context.Context, actorID string, from, to time.Time) (*models.CalendarView, error) {
	own, err := s.Events.ListForOwner(ctx, actorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list own events: %w", err)
	}
	accepted, err := s.Events.ListAcceptedFor(ctx, actorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list accepted events: %w", err)
	}
	busy, err := s.Availability.QueryOverlapping(ctx, actorID, from, to)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(own)+len(accepted))
	events := make([]models.Event, 0, len(own)+len(accepted))
	for _, ev := range append(own, accepted...) {
		if seen[ev.ID] {
			continue
		}
		seen[ev.ID] = true
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].StartAt.Before(events[j].StartAt) })

	if busy == nil {
		busy = []models.BusyTime{}
	}
	return &models.CalendarView{From: from, To: to, Events: events, BusyTimes: busy}, nil
}
