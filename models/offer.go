package models

import "time"

// SenderRole is fixed from the sender's account type at send time.
type SenderRole string

const (
	SenderProfessional SenderRole = "professional"
	SenderCreator      SenderRole = "creator"
)

// OfferStatus only carries meaning on priced messages.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// OfferThread is the single conversation between an event and one professional.
type OfferThread struct {
	ID             string    `bson:"id" json:"id"`
	EventID        string    `bson:"eventId" json:"eventId"`
	EventOwnerID   string    `bson:"eventOwnerId" json:"eventOwnerId"` // denormalized for inbox queries
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	LastMessageAt  time.Time `bson:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// OfferMessage is one entry of a thread's append-only log.
type OfferMessage struct {
	ID               string      `bson:"id" json:"id"`
	ThreadID         string      `bson:"threadId" json:"threadId"`
	EventID          string      `bson:"eventId" json:"eventId"` // denormalized for the accept cascade
	SenderID         string      `bson:"senderId" json:"senderId"`
	SenderRole       SenderRole  `bson:"senderRole" json:"senderRole"`
	Body             string      `bson:"body" json:"body"`
	ProposedAmount   *float64    `bson:"proposedAmount,omitempty" json:"proposedAmount,omitempty"`
	ProposedCurrency string      `bson:"proposedCurrency,omitempty" json:"proposedCurrency,omitempty"`
	EventCurrency    string      `bson:"eventCurrency,omitempty" json:"eventCurrency,omitempty"`
	ConversionRate   *float64    `bson:"conversionRate,omitempty" json:"conversionRate,omitempty"`
	ConvertedAmount  *float64    `bson:"convertedAmount,omitempty" json:"convertedAmount,omitempty"`
	Status           OfferStatus `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt        time.Time   `bson:"createdAt" json:"createdAt"`
}

// IsPriced reports whether the message carries a proposal.
func (m OfferMessage) IsPriced() bool {
	return m.ProposedAmount != nil
}

// Before orders messages by creation time, then by ID.
func (m OfferMessage) Before(other OfferMessage) bool {
	if !m.CreatedAt.Equal(other.CreatedAt) {
		return m.CreatedAt.Before(other.CreatedAt)
	}
	return m.ID < other.ID
}

// ThreadSummary is an inbox row.
type ThreadSummary struct {
	Thread       OfferThread   `json:"thread"`
	Event        Event         `json:"event"`
	LastMessage  *OfferMessage `json:"lastMessage,omitempty"`
	MessageCount int           `json:"messageCount"`
	CanMessage   bool          `json:"canMessage"`
}

// InboxStats summarizes an actor's negotiation activity.
type InboxStats struct {
	TotalThreads   int        `json:"totalThreads"`
	PendingOffers  int        `json:"pendingOffers"`
	AcceptedOffers int        `json:"acceptedOffers"`
	RecentActivity *time.Time `json:"recentActivity,omitempty"`
}

// ThreadView is a thread with its log and the actor's permissions.
type ThreadView struct {
	Thread         OfferThread    `json:"thread"`
	Event          Event          `json:"event"`
	Messages       []OfferMessage `json:"messages"`
	Created        bool           `json:"created"`
	IsCreator      bool           `json:"isCreator"`
	IsProfessional bool           `json:"isProfessional"`
	CanSendOffer   bool           `json:"canSendOffer"`
	CanSendCounter bool           `json:"canSendCounter"`
	CanMessage     bool           `json:"canMessage"`
}

// SendOfferInput is the professional's priced proposal.
type SendOfferInput struct {
	Amount   *float64 `json:"proposedAmount" binding:"required"`
	Currency string   `json:"proposedCurrency" binding:"required"`
	Message  string   `json:"message"`
}

// CounterOfferInput is the creator's priced reply, always in the event currency.
type CounterOfferInput struct {
	Amount  *float64 `json:"proposedAmount" binding:"required"`
	Message string   `json:"message"`
}

// ChatInput is a plain message.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// QuickBookingInput creates a private event straight from a professional's calendar.
type QuickBookingInput struct {
	ProfessionalID string `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime      string `json:"start_time" binding:"required"` // HH:MM
	EndTime        string `json:"end_time" binding:"required"`   // HH:MM
	Message        string `json:"message"`
}

// OfferDecision is the result of an accept or reject.
type OfferDecision struct {
	Message          OfferMessage `json:"message"`
	EventLocked      bool         `json:"eventLocked"`
	AcceptedThreadID string       `json:"acceptedThreadId,omitempty"`
	ProfessionalID   string       `json:"professionalId,omitempty"`
	CascadeRejected  int          `json:"cascadeRejected"`
}

// Page is one page of a list result.
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// QuickBookingResult is what the calendar gets back after a quick booking.
type QuickBookingResult struct {
	ThreadID     string    `json:"threadId"`
	EventID      string    `json:"eventId"`
	Professional UserBrief `json:"professional"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Message      string    `json:"message"`
}
