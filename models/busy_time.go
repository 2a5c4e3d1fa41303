package models

import "time"

// BusyTime is a range a user marked as unavailable. Ranges of the same owner may overlap.
type BusyTime struct {
	ID        string    `bson:"id" json:"id"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
	StartAt   time.Time `bson:"startAt" json:"startAt"`
	EndAt     time.Time `bson:"endAt" json:"endAt"`
	IsAllDay  bool      `bson:"isAllDay" json:"isAllDay"`
	Note      string    `bson:"note" json:"note"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// BusyTimeInput is the create payload.
type BusyTimeInput struct {
	StartAt  string `json:"startAt" binding:"required"` // RFC3339
	EndAt    string `json:"endAt" binding:"required"`   // RFC3339
	IsAllDay *bool  `json:"isAllDay"`
	Note     string `json:"note"`
}

// DayDeletion reports what deleteForDay did.
type DayDeletion struct {
	Day      string `json:"day"`
	Deleted  int    `json:"deleted"`
	Modified int    `json:"modified"`
}

// CalendarView is the events and busy ranges intersecting a period.
type CalendarView struct {
	From      time.Time  `json:"from"`
	To        time.Time  `json:"to"`
	Events    []Event    `json:"events"`
	BusyTimes []BusyTime `json:"busyTimes"`
}
