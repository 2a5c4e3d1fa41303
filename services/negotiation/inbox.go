package negotiation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"showdan/database"
	eventRepo "showdan/database/repository/event"
	offerRepo "showdan/database/repository/offer"
	"showdan/models"
	"showdan/utils"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Inbox status filters.
const (
	StatusAll      = "all"
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// Inbox serves the read side of negotiations.
type Inbox struct {
	Threads  offerRepo.ThreadRepository
	Messages offerRepo.MessageRepository
	Events   eventRepo.EventRepository
}

func NewInbox(threads offerRepo.ThreadRepository, messages offerRepo.MessageRepository, events eventRepo.EventRepository) *Inbox {
	return &Inbox{Threads: threads, Messages: messages, Events: events}
}

// NormalizePage clamps page to [1, math.MaxInt/pageSize] and pageSize to
// [1, MaxPageSize], so the page offset and its end never overflow.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}
	return page, pageSize
}

type threadWithEvent struct {
	thread models.OfferThread
	event  models.Event
}

func (in *Inbox) participantThreads(ctx context.Context, actorID string) ([]threadWithEvent, error) {
	threads, err := in.Threads.ListForParticipant(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	ids := make([]string, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.EventID)
	}
	events, err := in.Events.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load thread events: %w", err)
	}
	byID := make(map[string]models.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	out := make([]threadWithEvent, 0, len(threads))
	for _, t := range threads {
		ev, ok := byID[t.EventID]
		if !ok {
			continue
		}
		out = append(out, threadWithEvent{thread: t, event: ev})
	}
	return out, nil
}

func matchesStatus(tw threadWithEvent, status string) bool {
	switch status {
	case StatusPending:
		return !tw.event.IsLocked
	case StatusAccepted:
		return tw.event.IsLocked && tw.event.AcceptedThreadID == tw.thread.ID
	}
	return true
}

// ListThreads returns the actor's threads, most recently active first.
func (in *Inbox) ListThreads(ctx context.Context, actorID, status string, page, pageSize int) (*models.Page[models.ThreadSummary], error) {
	if status == "" {
		status = StatusAll
	}
	if status != StatusAll && status != StatusPending && status != StatusAccepted {
		return nil, utils.NewInvalidArgument("status must be one of all, pending, accepted")
	}
	page, pageSize = NormalizePage(page, pageSize)

	all, err := in.participantThreads(ctx, actorID)
	if err != nil {
		return nil, err
	}
	var filtered []threadWithEvent
	for _, tw := range all {
		if matchesStatus(tw, status) {
			filtered = append(filtered, tw)
		}
	}

	result := &models.Page[models.ThreadSummary]{Page: page, PageSize: pageSize, Total: len(filtered), Items: []models.ThreadSummary{}}
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return result, nil
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	for _, tw := range filtered[start:end] {
		summary := models.ThreadSummary{
			Thread:     tw.thread,
			Event:      tw.event,
			CanMessage: CanChat(tw.event, tw.thread, actorID),
		}
		last, err := in.Messages.Latest(ctx, tw.thread.ID)
		switch {
		case err == nil:
			summary.LastMessage = last
		case !errors.Is(err, database.ErrNotFound):
			return nil, fmt.Errorf("latest message: %w", err)
		}
		if summary.MessageCount, err = in.Messages.CountByThread(ctx, tw.thread.ID); err != nil {
			return nil, fmt.Errorf("count messages: %w", err)
		}
		result.Items = append(result.Items, summary)
	}
	return result, nil
}

// Stats summarizes the actor's threads.
func (in *Inbox) Stats(ctx context.Context, actorID string) (*models.InboxStats, error) {
	all, err := in.participantThreads(ctx, actorID)
	if err != nil {
		return nil, err
	}

	stats := &models.InboxStats{TotalThreads: len(all)}
	var recent time.Time
	for _, tw := range all {
		if matchesStatus(tw, StatusPending) {
			stats.PendingOffers++
		}
		if matchesStatus(tw, StatusAccepted) {
			stats.AcceptedOffers++
		}
		if tw.thread.LastMessageAt.After(recent) {
			recent = tw.thread.LastMessageAt
		}
	}
	if !recent.IsZero() {
		stats.RecentActivity = &recent
	}
	return stats, nil
}

// ListMessages returns a page of the thread's log in ascending order.
// Only the two participants may read it.
func (in *Inbox) ListMessages(ctx context.Context, threadID, actorID string, page, pageSize int) (*models.Page[models.OfferMessage], error) {
	thread, err := in.Threads.GetByID(ctx, threadID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFound("thread not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}
	if actorID != thread.ProfessionalID && actorID != thread.EventOwnerID {
		return nil, utils.NewForbidden(MsgNotParticipant)
	}

	page, pageSize = NormalizePage(page, pageSize)
	msgs, total, err := in.Messages.ListByThread(ctx, threadID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if msgs == nil {
		msgs = []models.OfferMessage{}
	}
	return &models.Page[models.OfferMessage]{Items: msgs, Page: page, PageSize: pageSize, Total: total}, nil
}
