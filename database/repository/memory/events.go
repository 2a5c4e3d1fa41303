package memoryRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"showdan/database"
	"showdan/models"
)

type EventRepo struct{ s *Store }

func (r *EventRepo) Create(ctx context.Context, event *models.Event) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.events[event.ID]; ok {
		return fmt.Errorf("create event %s: %w", event.ID, database.ErrDuplicateKey)
	}
	r.s.events[event.ID] = *event
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	defer r.s.lock(ctx)()
	ev, ok := r.s.events[id]
	if !ok {
		return nil, fmt.Errorf("get event %s: %w", id, database.ErrNotFound)
	}
	return &ev, nil
}

func (r *EventRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	defer r.s.lock(ctx)()
	var out []models.Event
	for _, id := range ids {
		if ev, ok := r.s.events[id]; ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *EventRepo) GuardOpen(ctx context.Context, id string) (*models.Event, error) {
	defer r.s.lock(ctx)()
	ev, ok := r.s.events[id]
	if !ok {
		return nil, fmt.Errorf("guard event %s: %w", id, database.ErrNotFound)
	}
	if !ev.IsLocked {
		ev.Version++
		r.s.events[id] = ev
	}
	return &ev, nil
}

func (r *EventRepo) Lock(ctx context.Context, id, threadID, professionalID string) error {
	defer r.s.lock(ctx)()
	ev, ok := r.s.events[id]
	if !ok {
		return fmt.Errorf("lock event %s: %w", id, database.ErrNotFound)
	}
	if ev.IsLocked {
		return fmt.Errorf("lock event %s: %w", id, database.ErrConditionFailed)
	}
	ev.IsLocked = true
	ev.AcceptedThreadID = threadID
	ev.AcceptedProfessionalID = professionalID
	ev.Version++
	r.s.events[id] = ev
	return nil
}

func (r *EventRepo) ListForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]models.Event, error) {
	return r.filter(ctx, from, to, func(ev models.Event) bool { return ev.OwnerID == ownerID })
}

func (r *EventRepo) ListAcceptedFor(ctx context.Context, professionalID string, from, to time.Time) ([]models.Event, error) {
	return r.filter(ctx, from, to, func(ev models.Event) bool {
		return ev.IsLocked && ev.AcceptedProfessionalID == professionalID
	})
}

func (r *EventRepo) filter(ctx context.Context, from, to time.Time, keep func(models.Event) bool) ([]models.Event, error) {
	defer r.s.lock(ctx)()
	var out []models.Event
	for _, ev := range r.s.events {
		if keep(ev) && ev.StartAt.Before(to) && ev.EndAt.After(from) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}
