package memoryRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"showdan/database"
	"showdan/models"
)

type ThreadRepo struct{ s *Store }

func (r *ThreadRepo) Create(ctx context.Context, thread *models.OfferThread) error {
	defer r.s.lock(ctx)()
	for _, t := range r.s.threads {
		if t.ID == thread.ID || (t.EventID == thread.EventID && t.ProfessionalID == thread.ProfessionalID) {
			return fmt.Errorf("create thread: %w", database.ErrDuplicateKey)
		}
	}
	r.s.threads[thread.ID] = *thread
	return nil
}

func (r *ThreadRepo) GetByID(ctx context.Context, id string) (*models.OfferThread, error) {
	defer r.s.lock(ctx)()
	t, ok := r.s.threads[id]
	if !ok {
		return nil, fmt.Errorf("get thread %s: %w", id, database.ErrNotFound)
	}
	return &t, nil
}

func (r *ThreadRepo) GetByPair(ctx context.Context, eventID, professionalID string) (*models.OfferThread, error) {
	defer r.s.lock(ctx)()
	for _, t := range r.s.threads {
		if t.EventID == eventID && t.ProfessionalID == professionalID {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("get thread for event %s: %w", eventID, database.ErrNotFound)
}

func (r *ThreadRepo) Touch(ctx context.Context, id string, at time.Time) error {
	defer r.s.lock(ctx)()
	t, ok := r.s.threads[id]
	if !ok {
		return fmt.Errorf("touch thread %s: %w", id, database.ErrNotFound)
	}
	if at.After(t.LastMessageAt) {
		t.LastMessageAt = at
		r.s.threads[id] = t
	}
	return nil
}

func (r *ThreadRepo) ListForParticipant(ctx context.Context, userID string) ([]models.OfferThread, error) {
	defer r.s.lock(ctx)()
	var out []models.OfferThread
	for _, t := range r.s.threads {
		if t.ProfessionalID == userID || t.EventOwnerID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastMessageAt.Equal(out[j].LastMessageAt) {
			return out[i].LastMessageAt.After(out[j].LastMessageAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type MessageRepo struct{ s *Store }

func (r *MessageRepo) Append(ctx context.Context, msg *models.OfferMessage) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.messages[msg.ID]; ok {
		return fmt.Errorf("append message %s: %w", msg.ID, database.ErrDuplicateKey)
	}
	r.s.messages[msg.ID] = *msg
	return nil
}

// sorted returns the matching messages in log order. Callers hold the lock.
func (r *MessageRepo) sorted(keep func(models.OfferMessage) bool) []models.OfferMessage {
	var out []models.OfferMessage
	for _, m := range r.s.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (r *MessageRepo) LatestPriced(ctx context.Context, threadID string) (*models.OfferMessage, error) {
	defer r.s.lock(ctx)()
	msgs := r.sorted(func(m models.OfferMessage) bool { return m.ThreadID == threadID && m.IsPriced() })
	if len(msgs) == 0 {
		return nil, fmt.Errorf("latest priced message of %s: %w", threadID, database.ErrNotFound)
	}
	last := msgs[len(msgs)-1]
	return &last, nil
}

func (r *MessageRepo) Latest(ctx context.Context, threadID string) (*models.OfferMessage, error) {
	defer r.s.lock(ctx)()
	msgs := r.sorted(func(m models.OfferMessage) bool { return m.ThreadID == threadID })
	if len(msgs) == 0 {
		return nil, fmt.Errorf("latest message of %s: %w", threadID, database.ErrNotFound)
	}
	last := msgs[len(msgs)-1]
	return &last, nil
}

func (r *MessageRepo) Transition(ctx context.Context, id string, from, to models.OfferStatus) error {
	defer r.s.lock(ctx)()
	m, ok := r.s.messages[id]
	if !ok || m.Status != from {
		return fmt.Errorf("message %s is not %s: %w", id, from, database.ErrConditionFailed)
	}
	m.Status = to
	r.s.messages[id] = m
	return nil
}

func (r *MessageRepo) RejectPendingForEvent(ctx context.Context, eventID, exceptID string) (int, error) {
	defer r.s.lock(ctx)()
	n := 0
	for id, m := range r.s.messages {
		if m.EventID == eventID && m.Status == models.OfferPending && id != exceptID {
			m.Status = models.OfferRejected
			r.s.messages[id] = m
			n++
		}
	}
	return n, nil
}

func (r *MessageRepo) ListByThread(ctx context.Context, threadID string, skip, limit int) ([]models.OfferMessage, int, error) {
	defer r.s.lock(ctx)()
	msgs := r.sorted(func(m models.OfferMessage) bool { return m.ThreadID == threadID })
	total := len(msgs)
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return msgs[skip:end], total, nil
}

func (r *MessageRepo) CountByThread(ctx context.Context, threadID string) (int, error) {
	defer r.s.lock(ctx)()
	n := 0
	for _, m := range r.s.messages {
		if m.ThreadID == threadID {
			n++
		}
	}
	return n, nil
}

func (r *MessageRepo) ListByEvent(ctx context.Context, eventID string) ([]models.OfferMessage, error) {
	defer r.s.lock(ctx)()
	return r.sorted(func(m models.OfferMessage) bool { return m.EventID == eventID }), nil
}
