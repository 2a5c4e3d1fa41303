package currencyRepo

import (
	"context"

	"showdan/models"
)

// RateTable is the read side of the exchange rate table.
type RateTable interface {
	// Lookup returns the directed rate from→to, or database.ErrNotFound.
	Lookup(ctx context.Context, from, to string) (*models.ExchangeRate, error)
}

// RateStore also accepts writes. It backs the rate seeding command and tests.
type RateStore interface {
	RateTable
	Upsert(ctx context.Context, rate models.ExchangeRate) error
}
