package repository

import (
	"context"

	"showdan/database"
	busytimeRepo "showdan/database/repository/busytime"
	currencyRepo "showdan/database/repository/currency"
	eventRepo "showdan/database/repository/event"
	memoryRepo "showdan/database/repository/memory"
	offerRepo "showdan/database/repository/offer"
	userRepo "showdan/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type (
	EventRepository    = eventRepo.EventRepository
	ThreadRepository   = offerRepo.ThreadRepository
	MessageRepository  = offerRepo.MessageRepository
	BusyTimeRepository = busytimeRepo.BusyTimeRepository
	RateTable          = currencyRepo.RateTable
	UserRepository     = userRepo.UserRepository
)

// Repositories bundles every store the services need, plus the transactor that
// makes them atomic together.
type Repositories struct {
	Events    EventRepository
	Threads   ThreadRepository
	Messages  MessageRepository
	BusyTimes BusyTimeRepository
	Rates     RateTable
	Users     UserRepository
	Tx        database.Transactor

	indexers []indexer
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// NewMongoRepositories wires the MongoDB implementations.
func NewMongoRepositories(client *mongo.Client, db *mongo.Database) *Repositories {
	events := eventRepo.NewMongoEventRepo(db)
	threads := offerRepo.NewMongoThreadRepo(db)
	messages := offerRepo.NewMongoMessageRepo(db)
	busy := busytimeRepo.NewMongoBusyTimeRepo(db)
	rates := currencyRepo.NewMongoRateRepo(db)
	users := userRepo.NewMongoUserRepo(db)

	return &Repositories{
		Events:    events,
		Threads:   threads,
		Messages:  messages,
		BusyTimes: busy,
		Rates:     rates,
		Users:     users,
		Tx:        database.NewMongoTransactor(client),
		indexers:  []indexer{events, threads, messages, busy, rates, users},
	}
}

// NewMemoryRepositories wires the in-memory store.
func NewMemoryRepositories(store *memoryRepo.Store) *Repositories {
	return &Repositories{
		Events:    store.Events(),
		Threads:   store.Threads(),
		Messages:  store.Messages(),
		BusyTimes: store.BusyTimes(),
		Rates:     store.Rates(),
		Users:     store.Users(),
		Tx:        store,
	}
}

// EnsureIndexes creates the indexes of every Mongo-backed repository.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, idx := range r.indexers {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
