// Package memoryRepo keeps every repository in process memory. It backs the
// memory storage driver and the service tests.
package memoryRepo

import (
	"context"
	"sync"

	"showdan/models"
)

type txKey struct{}

// Store holds all collections behind one mutex. Transactions hold the mutex for
// their whole duration and restore a snapshot when fn fails.
type Store struct {
	mu       sync.Mutex
	events   map[string]models.Event
	threads  map[string]models.OfferThread
	messages map[string]models.OfferMessage
	busy     map[string]models.BusyTime
	rates    map[string]models.ExchangeRate
	users    map[string]models.User
}

func NewStore() *Store {
	return &Store{
		events:   make(map[string]models.Event),
		threads:  make(map[string]models.OfferThread),
		messages: make(map[string]models.OfferMessage),
		busy:     make(map[string]models.BusyTime),
		rates:    make(map[string]models.ExchangeRate),
		users:    make(map[string]models.User),
	}
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock takes the store mutex unless ctx already belongs to a transaction on s.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTransaction implements database.Transactor.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	events   map[string]models.Event
	threads  map[string]models.OfferThread
	messages map[string]models.OfferMessage
	busy     map[string]models.BusyTime
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		events:   cloneMap(s.events),
		threads:  cloneMap(s.threads),
		messages: cloneMap(s.messages),
		busy:     cloneMap(s.busy),
	}
}

func (s *Store) restore(snap snapshot) {
	s.events = snap.events
	s.threads = snap.threads
	s.messages = snap.messages
	s.busy = snap.busy
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) Events() *EventRepo       { return &EventRepo{s} }
func (s *Store) Threads() *ThreadRepo     { return &ThreadRepo{s} }
func (s *Store) Messages() *MessageRepo   { return &MessageRepo{s} }
func (s *Store) BusyTimes() *BusyTimeRepo { return &BusyTimeRepo{s} }
func (s *Store) Rates() *RateRepo         { return &RateRepo{s} }
func (s *Store) Users() *UserRepo         { return &UserRepo{s} }
