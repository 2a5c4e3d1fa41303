package booking

import (
	"time"

	"showdan/database/repository"
	"showdan/services/negotiation"

	"go.uber.org/zap"
)

// NewBookingOrchestrator wires the orchestrator over a repository bundle.
func NewBookingOrchestrator(repos *repository.Repositories, store negotiation.ThreadStore, machine *negotiation.Machine, loc *time.Location, logger *zap.Logger) *DefaultBookingOrchestrator {
	return &DefaultBookingOrchestrator{
		Users:    repos.Users,
		Events:   repos.Events,
		Threads:  repos.Threads,
		Messages: repos.Messages,
		Store:    store,
		Machine:  machine,
		Tx:       repos.Tx,
		Location: loc,
		Logger:   logger,
		Now:      time.Now,
	}
}
