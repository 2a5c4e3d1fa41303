package booking

import (
	"context"
	"fmt"
	"testing"

	"showdan/models"
	"showdan/services/negotiation"
	"showdan/utils"
)

func quickInput(pro string) models.QuickBookingInput {
	return models.QuickBookingInput{
		ProfessionalID: pro,
		Date:           "2026-06-20",
		StartTime:      "10:00",
		EndTime:        "12:30",
		Message:        "Are you free for a shoot?",
	}
}

func TestQuickBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.orch.QuickBooking(ctx, "creator", quickInput("pro-p"))
	if err != nil {
		t.Fatalf("quick booking: %v", err)
	}
	if res.Professional.Name != "Pat Otieno" || res.EndAt.Sub(res.StartAt).Minutes() != 150 {
		t.Fatalf("unexpected result %+v", res)
	}

	ev, _ := f.store.Events().GetByID(ctx, res.EventID)
	if ev.IsPosted || ev.IsLocked || ev.Currency != "USD" || ev.OwnerID != "creator" {
		t.Fatalf("unexpected event %+v", ev)
	}
	page, err := f.inbox.ListMessages(ctx, res.ThreadID, "pro-p", 1, 20)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if page.Total != 1 || page.Items[0].SenderRole != models.SenderCreator || page.Items[0].IsPriced() {
		t.Fatalf("unexpected log %+v", page.Items)
	}

	// The booked professional negotiates on the booking thread.
	offer := f.offer(t, res.EventID, "pro-p", 250, "USD")
	if offer.Message.ThreadID != res.ThreadID {
		t.Fatalf("offer landed on %s, want %s", offer.Message.ThreadID, res.ThreadID)
	}
	// Nobody else can start a thread on a private event.
	_, err = f.orch.SendOffer(ctx, res.EventID, "pro-q", models.SendOfferInput{Amount: ptr(200), Currency: "USD"})
	wantKind(t, err, utils.KindNotFound)
}

func TestQuickBookingValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		actor  string
		mutate func(*models.QuickBookingInput)
		kind   utils.ErrorKind
	}{
		{"unknown professional", "creator", func(in *models.QuickBookingInput) { in.ProfessionalID = "ghost" }, utils.KindNotFound},
		{"inactive professional", "creator", func(in *models.QuickBookingInput) { in.ProfessionalID = "pro-off" }, utils.KindNotFound},
		{"not a professional", "creator", func(in *models.QuickBookingInput) { in.ProfessionalID = "guest" }, utils.KindNotFound},
		{"booking yourself", "pro-p", func(in *models.QuickBookingInput) {}, utils.KindInvalidArgument},
		{"end before start", "creator", func(in *models.QuickBookingInput) { in.EndTime = "09:00" }, utils.KindInvalidArgument},
		{"past date", "creator", func(in *models.QuickBookingInput) { in.Date = "2026-05-31" }, utils.KindInvalidArgument},
		{"bad time", "creator", func(in *models.QuickBookingInput) { in.StartTime = "10am" }, utils.KindInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := quickInput("pro-p")
			tt.mutate(&in)
			_, err := f.orch.QuickBooking(context.Background(), tt.actor, in)
			wantKind(t, err, tt.kind)
		})
	}
}

func TestOpenThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t)

	view, err := f.orch.OpenThread(ctx, ev.ID, "pro-p", "")
	if err != nil {
		t.Fatalf("open thread: %v", err)
	}
	if !view.Created || !view.IsProfessional || view.IsCreator || !view.CanSendOffer || view.CanSendCounter || !view.CanMessage {
		t.Fatalf("unexpected professional view %+v", view)
	}
	again, _ := f.orch.OpenThread(ctx, ev.ID, "pro-p", "")
	if again.Created || again.Thread.ID != view.Thread.ID {
		t.Fatal("second open must return the same thread")
	}

	_, err = f.orch.OpenThread(ctx, ev.ID, "creator", "")
	wantKind(t, err, utils.KindInvalidArgument)
	owner, err := f.orch.OpenThread(ctx, ev.ID, "creator", "pro-p")
	if err != nil {
		t.Fatalf("owner open: %v", err)
	}
	if !owner.IsCreator || !owner.CanSendCounter || owner.CanSendOffer {
		t.Fatalf("unexpected owner view %+v", owner)
	}

	_, err = f.orch.OpenThread(ctx, ev.ID, "guest", "")
	wantKind(t, err, utils.KindForbidden)

	f.offer(t, ev.ID, "pro-p", 300, "USD")
	if _, err := f.orch.AcceptOffer(ctx, ev.ID, "pro-p", "creator"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err = f.orch.OpenThread(ctx, ev.ID, "pro-q", "")
	wantKind(t, err, utils.KindConflict)

	locked, err := f.orch.OpenThread(ctx, ev.ID, "pro-p", "")
	if err != nil {
		t.Fatalf("reopen accepted thread: %v", err)
	}
	if locked.CanSendOffer || !locked.CanMessage || len(locked.Messages) != 1 {
		t.Fatalf("unexpected locked view %+v", locked)
	}

	// Long logs show their newest messages.
	for i := 0; i < negotiation.MaxPageSize+5; i++ {
		if _, err := f.orch.Chat(ctx, locked.Thread.ID, "pro-p", models.ChatInput{Message: fmt.Sprintf("note %03d", i)}); err != nil {
			t.Fatalf("chat %d: %v", i, err)
		}
	}
	long, err := f.orch.OpenThread(ctx, ev.ID, "pro-p", "")
	if err != nil {
		t.Fatalf("reopen long thread: %v", err)
	}
	n := len(long.Messages)
	if n != negotiation.MaxPageSize || long.Messages[n-1].Body != fmt.Sprintf("note %03d", negotiation.MaxPageSize+4) || long.Messages[0].Body != "note 005" {
		t.Fatalf("expected the newest %d messages, got %d ending %q", negotiation.MaxPageSize, n, long.Messages[n-1].Body)
	}
}

func TestInboxAfterNegotiation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev := f.createEvent(t)
	f.offer(t, ev.ID, "pro-p", 300, "USD")
	f.offer(t, ev.ID, "pro-q", 320, "USD")

	page, err := f.inbox.ListThreads(ctx, "creator", negotiation.StatusPending, 1, 10)
	if err != nil {
		t.Fatalf("list threads: %v", err)
	}
	if page.Total != 2 || page.Items[0].Thread.ProfessionalID != "pro-q" || page.Items[0].MessageCount != 1 {
		t.Fatalf("unexpected inbox %+v", page)
	}

	if _, err := f.orch.AcceptOffer(ctx, ev.ID, "pro-q", "creator"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	stats, err := f.inbox.Stats(ctx, "pro-q")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalThreads != 1 || stats.AcceptedOffers != 1 || stats.PendingOffers != 0 || stats.RecentActivity == nil {
		t.Fatalf("unexpected stats %+v", stats)
	}
	accepted, _ := f.inbox.ListThreads(ctx, "pro-p", negotiation.StatusAccepted, 1, 10)
	if accepted.Total != 0 {
		t.Fatalf("pro-p has no accepted thread, got %d", accepted.Total)
	}
}
