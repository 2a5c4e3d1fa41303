package negotiation

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	memoryRepo "showdan/database/repository/memory"
	"showdan/models"
	"showdan/services/currency"
	"showdan/utils"

	"go.uber.org/zap"
)

func newStore(t *testing.T) (*DefaultThreadStore, *memoryRepo.Store) {
	t.Helper()
	mem := memoryRepo.NewStore()
	_ = mem.Rates().Upsert(context.Background(), models.ExchangeRate{From: "EUR", To: "USD", Rate: 1.08})
	s := NewThreadStore(mem.Threads(), mem.Messages(), currency.NewResolver(mem.Rates(), zap.NewNop()), zap.NewNop())
	return s, mem
}

func TestGetOrCreateThreadConcurrent(t *testing.T) {
	s, mem := newStore(t)
	event := models.Event{ID: "e1", OwnerID: "c"}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = map[string]bool{}
		created int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thread, wasCreated, err := s.GetOrCreateThread(context.Background(), event, "p1")
			if err != nil {
				t.Errorf("get or create: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[thread.ID] = true
			if wasCreated {
				created++
			}
		}()
	}
	wg.Wait()

	if len(ids) != 1 || created != 1 {
		t.Fatalf("expected one thread created once, got ids=%v created=%d", ids, created)
	}
	threads, _ := mem.Threads().ListForParticipant(context.Background(), "p1")
	if len(threads) != 1 || threads[0].EventOwnerID != "c" {
		t.Fatalf("unexpected threads %+v", threads)
	}
}

func TestAppendMessage(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	event := models.Event{ID: "e1", OwnerID: "c", Currency: "USD"}
	thread, _, _ := s.GetOrCreateThread(ctx, event, "p1")
	amount := 450.0

	msg, warning, err := s.AppendMessage(ctx, event, *thread, Draft{SenderID: "p1", Role: models.SenderProfessional, Amount: &amount, Currency: "eur"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if warning != "" || msg.ProposedCurrency != "EUR" || *msg.ConvertedAmount != 486 || msg.Status != models.OfferPending {
		t.Fatalf("unexpected message %+v (warning %q)", msg, warning)
	}

	chat, _, err := s.AppendMessage(ctx, event, *thread, Draft{SenderID: "c", Role: models.SenderCreator, Body: " thanks "})
	if err != nil {
		t.Fatalf("append chat: %v", err)
	}
	if chat.Status != "" || chat.IsPriced() || chat.Body != "thanks" {
		t.Fatalf("unexpected chat %+v", chat)
	}

	_, _, err = s.AppendMessage(ctx, event, *thread, Draft{SenderID: "c", Role: models.SenderCreator, Body: "   "})
	if !utils.IsKind(err, utils.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument for empty chat, got %v", err)
	}

	latest, err := s.LatestPricedMessage(ctx, thread.ID)
	if err != nil || latest.ID != msg.ID {
		t.Fatalf("latest priced = %+v, %v", latest, err)
	}
}

func TestAppendWithoutEventCurrency(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	event := models.Event{ID: "e1", OwnerID: "c"}
	thread, _, _ := s.GetOrCreateThread(ctx, event, "p1")
	amount := 80.0

	msg, warning, err := s.AppendMessage(ctx, event, *thread, Draft{SenderID: "c", Role: models.SenderCreator, Amount: &amount})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if warning == "" || msg.ConversionRate != nil || msg.ConvertedAmount != nil || msg.ProposedCurrency != "" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestListMessagesPaging(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	s.Now = func() time.Time { i++; return start.Add(time.Duration(i) * time.Second) }

	event := models.Event{ID: "e1", OwnerID: "c"}
	_ = mem.Events().Create(ctx, &event)
	thread, _, _ := s.GetOrCreateThread(ctx, event, "p1")
	for n := 0; n < 25; n++ {
		if _, _, err := s.AppendMessage(ctx, event, *thread, Draft{SenderID: "p1", Body: fmt.Sprintf("m%02d", n)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	inbox := NewInbox(mem.Threads(), mem.Messages(), mem.Events())
	page, err := inbox.ListMessages(ctx, thread.ID, "c", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 25 || page.PageSize != DefaultPageSize || len(page.Items) != 5 || page.Items[0].Body != "m20" {
		t.Fatalf("unexpected page %+v", page)
	}

	far, err := inbox.ListMessages(ctx, thread.ID, "c", 92233720368547760, 100)
	if err != nil {
		t.Fatalf("list far page: %v", err)
	}
	if far.Total != 25 || len(far.Items) != 0 {
		t.Fatalf("expected empty far page, got %+v", far)
	}
	threads, err := inbox.ListThreads(ctx, "c", StatusAll, math.MaxInt, 100)
	if err != nil {
		t.Fatalf("list far threads: %v", err)
	}
	if threads.Total != 1 || len(threads.Items) != 0 {
		t.Fatalf("expected empty far thread page, got %+v", threads)
	}

	if _, err := inbox.ListMessages(ctx, thread.ID, "stranger", 1, 10); !utils.IsKind(err, utils.KindForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if _, err := inbox.ListMessages(ctx, "missing", "c", 1, 10); !utils.IsKind(err, utils.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := inbox.ListThreads(ctx, "c", "archived", 1, 10); !utils.IsKind(err, utils.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct{ page, size, wantPage, wantSize int }{
		{0, 0, 1, DefaultPageSize},
		{3, 500, 3, MaxPageSize},
		{-1, 10, 1, 10},
		{math.MaxInt, 100, math.MaxInt / 100, 100},
		{92233720368547760, 100, math.MaxInt / 100, 100},
	}
	for _, tt := range tests {
		p, s := NormalizePage(tt.page, tt.size)
		if p != tt.wantPage || s != tt.wantSize {
			t.Fatalf("NormalizePage(%d,%d) = %d,%d", tt.page, tt.size, p, s)
		}
	}
}
