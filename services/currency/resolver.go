package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"showdan/database"
	currencyRepo "showdan/database/repository/currency"
	"showdan/utils"

	"go.uber.org/zap"
)

// Resolver turns the directed rate table into multiplicative conversion rates.
type Resolver interface {
	// Resolve returns the rate from→to. ok is false when neither direction is stored.
	Resolve(ctx context.Context, from, to string) (rate float64, ok bool, err error)
}

type DefaultResolver struct {
	Rates  currencyRepo.RateTable
	Logger *zap.Logger
}

func NewResolver(rates currencyRepo.RateTable, logger *zap.Logger) *DefaultResolver {
	return &DefaultResolver{Rates: rates, Logger: logger}
}

// Normalize upper-cases and trims a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *DefaultResolver) Resolve(ctx context.Context, from, to string) (float64, bool, error) {
	from, to = Normalize(from), Normalize(to)
	if from == to {
		return 1, true, nil
	}

	direct, err := r.Rates.Lookup(ctx, from, to)
	switch {
	case err == nil:
		return direct.Rate, true, nil
	case !errors.Is(err, database.ErrNotFound):
		return 0, false, fmt.Errorf("resolve %s->%s: %w", from, to, err)
	}

	inverse, err := r.Rates.Lookup(ctx, to, from)
	switch {
	case err == nil && inverse.Rate != 0:
		return 1 / inverse.Rate, true, nil
	case err == nil, errors.Is(err, database.ErrNotFound):
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("resolve %s->%s: %w", to, from, err)
}

// Conversion is the currency snapshot stored on a priced message.
type Conversion struct {
	Rate      *float64
	Converted *float64
	Warning   string
}

// Convert snapshots amount in the target currency. A missing rate or a failed
// lookup yields nil fields and a warning, never an error.
func Convert(ctx context.Context, r Resolver, logger *zap.Logger, amount float64, from, to string) Conversion {
	if to == "" {
		return Conversion{Warning: "event has no settlement currency; amount stored without conversion"}
	}
	rate, ok, err := r.Resolve(ctx, from, to)
	if err != nil {
		logger.Warn("currency lookup failed", zap.String("from", from), zap.String("to", to), zap.Error(err))
		ok = false
	}
	if !ok {
		logger.Warn("currency conversion unavailable", zap.String("from", from), zap.String("to", to))
		return Conversion{Warning: fmt.Sprintf("%s: no exchange rate from %s to %s; amount stored without conversion",
			utils.KindUnavailable, Normalize(from), Normalize(to))}
	}
	converted := utils.ConvertAmount(amount, rate)
	return Conversion{Rate: &rate, Converted: &converted}
}
