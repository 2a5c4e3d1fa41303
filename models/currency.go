package models

import "time"

// ExchangeRate means 1 unit of From equals Rate units of To.
type ExchangeRate struct {
	From      string    `bson:"from" json:"from"`
	To        string    `bson:"to" json:"to"`
	Rate      float64   `bson:"rate" json:"rate"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
