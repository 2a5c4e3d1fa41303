package memoryRepo

import (
	"context"
	"fmt"

	"showdan/database"
	"showdan/models"
)

// RateRepo holds exchange rates keyed by direction.
type RateRepo struct{ s *Store }

func (r *RateRepo) Lookup(ctx context.Context, from, to string) (*models.ExchangeRate, error) {
	defer r.s.lock(ctx)()
	rate, ok := r.s.rates[from+"->"+to]
	if !ok {
		return nil, fmt.Errorf("rate %s->%s: %w", from, to, database.ErrNotFound)
	}
	return &rate, nil
}

func (r *RateRepo) Upsert(ctx context.Context, rate models.ExchangeRate) error {
	defer r.s.lock(ctx)()
	r.s.rates[rate.From+"->"+rate.To] = rate
	return nil
}

// UserRepo holds accounts. Put stands in for the identity service.
type UserRepo struct{ s *Store }

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, database.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepo) Put(ctx context.Context, u models.User) {
	defer r.s.lock(ctx)()
	r.s.users[u.ID] = u
}
