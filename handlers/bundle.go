package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Event endpoints
	CreateEventHandler gin.HandlerFunc
	OpenThreadHandler  gin.HandlerFunc

	// Offer endpoints
	SendOfferHandler    gin.HandlerFunc
	CounterOfferHandler gin.HandlerFunc
	ChatHandler         gin.HandlerFunc
	AcceptOfferHandler  gin.HandlerFunc
	RejectOfferHandler  gin.HandlerFunc
	QuickBookingHandler gin.HandlerFunc

	// Inbox endpoints
	InboxHandler          gin.HandlerFunc
	InboxStatsHandler     gin.HandlerFunc
	ThreadMessagesHandler gin.HandlerFunc

	// Busy time endpoints
	CreateBusyTimeHandler gin.HandlerFunc
	ListBusyTimesHandler  gin.HandlerFunc
	DeleteBusyTimeHandler gin.HandlerFunc
	DeleteBusyDayHandler  gin.HandlerFunc

	// Calendar endpoints
	CalendarMonthHandler gin.HandlerFunc
	CalendarDayHandler   gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the per-resource handlers.
func NewHandlerBundle(events *EventHandler, offers *OfferHandler, busy *BusyTimeHandler, cal *CalendarHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateEventHandler: events.CreateEventHandler,
		OpenThreadHandler:  events.OpenThreadHandler,

		SendOfferHandler:    offers.SendOfferHandler,
		CounterOfferHandler: offers.CounterOfferHandler,
		ChatHandler:         offers.ChatHandler,
		AcceptOfferHandler:  offers.AcceptOfferHandler,
		RejectOfferHandler:  offers.RejectOfferHandler,
		QuickBookingHandler: offers.QuickBookingHandler,

		InboxHandler:          offers.InboxHandler,
		InboxStatsHandler:     offers.InboxStatsHandler,
		ThreadMessagesHandler: offers.ThreadMessagesHandler,

		CreateBusyTimeHandler: busy.CreateBusyTimeHandler,
		ListBusyTimesHandler:  busy.ListBusyTimesHandler,
		DeleteBusyTimeHandler: busy.DeleteBusyTimeHandler,
		DeleteBusyDayHandler:  busy.DeleteBusyDayHandler,

		CalendarMonthHandler: cal.CalendarMonthHandler,
		CalendarDayHandler:   cal.CalendarDayHandler,

		HealthHandler: HealthHandler,
	}
}
