package memoryRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"showdan/database"
	"showdan/models"
)

type BusyTimeRepo struct{ s *Store }

func (r *BusyTimeRepo) Insert(ctx context.Context, bt *models.BusyTime) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.busy[bt.ID]; ok {
		return fmt.Errorf("insert busy time %s: %w", bt.ID, database.ErrDuplicateKey)
	}
	r.s.busy[bt.ID] = *bt
	return nil
}

func (r *BusyTimeRepo) GetByID(ctx context.Context, id string) (*models.BusyTime, error) {
	defer r.s.lock(ctx)()
	bt, ok := r.s.busy[id]
	if !ok {
		return nil, fmt.Errorf("get busy time %s: %w", id, database.ErrNotFound)
	}
	return &bt, nil
}

func (r *BusyTimeRepo) ListOverlapping(ctx context.Context, ownerID string, from, to time.Time) ([]models.BusyTime, error) {
	defer r.s.lock(ctx)()
	var out []models.BusyTime
	for _, bt := range r.s.busy {
		if bt.OwnerID == ownerID && bt.StartAt.Before(to) && bt.EndAt.After(from) {
			out = append(out, bt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *BusyTimeRepo) SetBounds(ctx context.Context, id string, start, end time.Time) error {
	defer r.s.lock(ctx)()
	bt, ok := r.s.busy[id]
	if !ok {
		return fmt.Errorf("update busy time %s: %w", id, database.ErrNotFound)
	}
	bt.StartAt, bt.EndAt = start, end
	r.s.busy[id] = bt
	return nil
}

func (r *BusyTimeRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.busy[id]; !ok {
		return fmt.Errorf("delete busy time %s: %w", id, database.ErrNotFound)
	}
	delete(r.s.busy, id)
	return nil
}
