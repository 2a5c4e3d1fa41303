package services

import (
	"time"

	"showdan/database/repository"
	"showdan/services/availability"
	"showdan/services/booking"
	"showdan/services/calendar"
	"showdan/services/currency"
	"showdan/services/negotiation"
	"showdan/utils"

	"go.uber.org/zap"
)

// Services is the assembled service layer the handlers depend on.
type Services struct {
	Booking      *booking.DefaultBookingOrchestrator
	Inbox        *negotiation.Inbox
	Availability *availability.DefaultAvailabilityService
	Calendar     *calendar.CalendarService
}

// New wires every service over repos. rates may wrap repos.Rates (e.g. with a
// cache); nil means repos.Rates is used directly.
func New(repos *repository.Repositories, rates repository.RateTable, locker utils.Locker, loc *time.Location, logger *zap.Logger) *Services {
	if rates == nil {
		rates = repos.Rates
	}
	resolver := currency.NewResolver(rates, logger)
	store := negotiation.NewThreadStore(repos.Threads, repos.Messages, resolver, logger)
	machine := negotiation.NewMachine(repos.Events, repos.Messages, store, repos.Tx, logger)
	avail := availability.NewAvailabilityService(repos.BusyTimes, repos.Tx, locker, loc, logger)

	return &Services{
		Booking:      booking.NewBookingOrchestrator(repos, store, machine, loc, logger),
		Inbox:        negotiation.NewInbox(repos.Threads, repos.Messages, repos.Events),
		Availability: avail,
		Calendar:     calendar.NewCalendarService(repos.Events, avail, loc),
	}
}
