package calendar

import (
	"context"
	"testing"
	"time"

	memoryRepo "showdan/database/repository/memory"
	"showdan/models"
	"showdan/services/availability"
	"showdan/utils"

	"go.uber.org/zap"
)

func seedEvent(t *testing.T, store *memoryRepo.Store, ev models.Event) {
	t.Helper()
	if err := store.Events().Create(context.Background(), &ev); err != nil {
		t.Fatalf("create event %s: %v", ev.ID, err)
	}
}

func newCalendar(t *testing.T) (*CalendarService, *memoryRepo.Store, *availability.DefaultAvailabilityService) {
	t.Helper()
	store := memoryRepo.NewStore()
	avail := availability.NewAvailabilityService(store.BusyTimes(), store, utils.NewLocalLocker(), time.UTC, zap.NewNop())
	return NewCalendarService(store.Events(), avail, time.UTC), store, avail
}

func TestCalendarMonth(t *testing.T) {
	svc, store, avail := newCalendar(t)
	ctx := context.Background()
	at := func(m time.Month, d, h int) time.Time { return time.Date(2030, m, d, h, 0, 0, 0, time.UTC) }

	seedEvent(t, store, models.Event{ID: "own-may", OwnerID: "pro", StartAt: at(5, 20, 10), EndAt: at(5, 20, 12)})
	seedEvent(t, store, models.Event{ID: "own-june", OwnerID: "pro", StartAt: at(6, 2, 10), EndAt: at(6, 2, 12)})
	seedEvent(t, store, models.Event{ID: "accepted", OwnerID: "creator", StartAt: at(5, 3, 18), EndAt: at(5, 3, 22),
		IsLocked: true, AcceptedProfessionalID: "pro", AcceptedThreadID: "t1"})
	seedEvent(t, store, models.Event{ID: "open", OwnerID: "creator", StartAt: at(5, 4, 18), EndAt: at(5, 4, 22)})
	// Spans the month boundary, so it appears in both April and May.
	seedEvent(t, store, models.Event{ID: "boundary", OwnerID: "pro", StartAt: at(4, 30, 20), EndAt: at(5, 1, 2)})

	if _, err := avail.Insert(ctx, "pro", at(5, 10, 0), at(5, 11, 0), true, "away"); err != nil {
		t.Fatalf("insert busy: %v", err)
	}
	if _, err := avail.Insert(ctx, "someone-else", at(5, 10, 0), at(5, 11, 0), true, ""); err != nil {
		t.Fatalf("insert busy: %v", err)
	}

	view, err := svc.Month(ctx, "pro", 2030, 5)
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	var ids []string
	for _, ev := range view.Events {
		ids = append(ids, ev.ID)
	}
	want := []string{"boundary", "accepted", "own-may"}
	if len(ids) != len(want) {
		t.Fatalf("events = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("events = %v, want %v", ids, want)
		}
	}
	if len(view.BusyTimes) != 1 || view.BusyTimes[0].OwnerID != "pro" {
		t.Errorf("busy times = %+v", view.BusyTimes)
	}
	if !view.From.Equal(at(5, 1, 0)) || !view.To.Equal(at(6, 1, 0)) {
		t.Errorf("range = %s..%s", view.From, view.To)
	}
}

func TestCalendarDayAndValidation(t *testing.T) {
	svc, store, _ := newCalendar(t)
	ctx := context.Background()
	seedEvent(t, store, models.Event{ID: "e1", OwnerID: "creator",
		StartAt: time.Date(2030, 5, 3, 18, 0, 0, 0, time.UTC), EndAt: time.Date(2030, 5, 3, 22, 0, 0, 0, time.UTC)})

	view, err := svc.Day(ctx, "creator", "2030-05-03")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(view.Events) != 1 || view.BusyTimes == nil {
		t.Errorf("unexpected view %+v", view)
	}

	empty, err := svc.Day(ctx, "creator", "2030-05-04")
	if err != nil || len(empty.Events) != 0 {
		t.Errorf("next day = %+v, %v", empty, err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"bad date", func() error { _, err := svc.Day(ctx, "creator", "03/05/2030"); return err }},
		{"month zero", func() error { _, err := svc.Month(ctx, "creator", 2030, 0); return err }},
		{"month thirteen", func() error { _, err := svc.Month(ctx, "creator", 2030, 13); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !utils.IsKind(err, utils.KindInvalidArgument) {
				t.Errorf("expected invalid argument, got %v", err)
			}
		})
	}
}
