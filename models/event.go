package models

import "time"

// Event is a bookable engagement owned by a creator.
type Event struct {
	ID                     string    `bson:"id" json:"id"`
	OwnerID                string    `bson:"ownerId" json:"ownerId"`
	Name                   string    `bson:"name" json:"name"`
	Location               string    `bson:"location,omitempty" json:"location,omitempty"`
	StartAt                time.Time `bson:"startAt" json:"startAt"`
	EndAt                  time.Time `bson:"endAt" json:"endAt"`
	Currency               string    `bson:"currency,omitempty" json:"currency,omitempty"` // settlement currency code, e.g. "USD"
	Budget                 *float64  `bson:"budget,omitempty" json:"budget,omitempty"`
	AdvancePayment         *float64  `bson:"advancePayment,omitempty" json:"advancePayment,omitempty"`
	IsLocked               bool      `bson:"isLocked" json:"isLocked"`
	IsPosted               bool      `bson:"isPosted" json:"isPosted"`
	AcceptedThreadID       string    `bson:"acceptedThreadId,omitempty" json:"acceptedThreadId,omitempty"`
	AcceptedProfessionalID string    `bson:"acceptedProfessionalId,omitempty" json:"acceptedProfessionalId,omitempty"`
	Version                int       `bson:"version" json:"-"` // bumped by every guarded write
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateEventInput is the payload for creating a posted event.
type CreateEventInput struct {
	Name           string   `json:"name" binding:"required"`
	Location       string   `json:"location"`
	StartAt        string   `json:"startAt" binding:"required"` // RFC3339
	EndAt          string   `json:"endAt" binding:"required"`   // RFC3339
	Currency       string   `json:"currency"`
	Budget         *float64 `json:"budget"`
	AdvancePayment *float64 `json:"advancePayment"`
}
