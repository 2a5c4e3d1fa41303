package negotiation

import (
	"context"
	"errors"
	"testing"

	"showdan/database"
	"showdan/models"
	"showdan/utils"

	"go.uber.org/zap"
)

func TestOpenAndSendPriced(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()
	m := NewMachine(mem.Events(), mem.Messages(), s, mem, zap.NewNop())

	open := models.Event{ID: "open", OwnerID: "c", Currency: "USD", IsPosted: true}
	locked := models.Event{ID: "locked", OwnerID: "c", Currency: "USD", IsPosted: true, IsLocked: true, AcceptedThreadID: "t-other", AcceptedProfessionalID: "p2"}
	for _, ev := range []models.Event{open, locked} {
		ev := ev
		if err := mem.Events().Create(ctx, &ev); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	amount := 120.0
	draft := Draft{SenderID: "p1", Role: models.SenderProfessional, Amount: &amount, Currency: "USD"}

	first, err := m.OpenAndSendPriced(ctx, open.ID, "p1", draft)
	if err != nil {
		t.Fatalf("first offer: %v", err)
	}
	second, err := m.OpenAndSendPriced(ctx, open.ID, "p1", draft)
	if err != nil {
		t.Fatalf("second offer: %v", err)
	}
	if first.Message.ThreadID == "" || first.Message.ThreadID != second.Message.ThreadID {
		t.Fatalf("offers landed on %q and %q", first.Message.ThreadID, second.Message.ThreadID)
	}

	// An event locked after the caller's checks gets no thread.
	_, err = m.OpenAndSendPriced(ctx, locked.ID, "p1", draft)
	if !utils.IsKind(err, utils.KindConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if _, err := mem.Threads().GetByPair(ctx, locked.ID, "p1"); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected no thread on the locked event, got %v", err)
	}
}

func TestAppendRejectsAmountRoundingToZero(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()
	event := models.Event{ID: "e1", OwnerID: "c", Currency: "USD"}
	_ = mem.Events().Create(ctx, &event)
	thread, _, err := s.GetOrCreateThread(ctx, event, "p1")
	if err != nil {
		t.Fatalf("thread: %v", err)
	}

	for _, amount := range []float64{0.004, 0, -3} {
		a := amount
		_, _, err := s.AppendMessage(ctx, event, *thread, Draft{SenderID: "p1", Role: models.SenderProfessional, Amount: &a, Currency: "USD"})
		if !utils.IsKind(err, utils.KindInvalidArgument) {
			t.Fatalf("amount %v: expected InvalidArgument, got %v", amount, err)
		}
	}
	if n, _ := mem.Messages().CountByThread(ctx, thread.ID); n != 0 {
		t.Fatalf("expected no stored messages, got %d", n)
	}

	tiny := 0.005
	msg, _, err := s.AppendMessage(ctx, event, *thread, Draft{SenderID: "p1", Role: models.SenderProfessional, Amount: &tiny, Currency: "USD"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if *msg.ProposedAmount != 0.01 {
		t.Fatalf("stored amount = %v, want 0.01", *msg.ProposedAmount)
	}
}
