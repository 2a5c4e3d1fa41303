package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"showdan/database/repository"
	memoryRepo "showdan/database/repository/memory"
	"showdan/handlers"
	"showdan/models"
	"showdan/services"
	"showdan/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
	tokens map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := memoryRepo.NewStore()
	users := store.Users()
	users.Put(ctx, models.User{ID: "creator", FirstName: "Cara", AccountType: models.AccountPersonal, IsActive: true, Currency: "USD"})
	users.Put(ctx, models.User{ID: "pro-p", FirstName: "Pat", AccountType: models.AccountProfessional, IsActive: true})
	users.Put(ctx, models.User{ID: "pro-q", FirstName: "Quinn", AccountType: models.AccountProfessional, IsActive: true})
	if err := store.Rates().Upsert(ctx, models.ExchangeRate{From: "EUR", To: "USD", Rate: 1.08}); err != nil {
		t.Fatalf("seed rate: %v", err)
	}

	repos := repository.NewMemoryRepositories(store)
	svc := services.New(repos, nil, utils.NewLocalLocker(), time.UTC, zap.NewNop())
	hb := handlers.NewHandlerBundle(
		handlers.NewEventHandler(svc.Booking),
		handlers.NewOfferHandler(svc.Booking, svc.Inbox),
		handlers.NewBusyTimeHandler(svc.Availability),
		handlers.NewCalendarHandler(svc.Calendar),
	)
	r := gin.New()
	RegisterRoutes(r, hb)

	tokens := map[string]string{}
	for _, id := range []string{"creator", "pro-p", "pro-q"} {
		tok, err := utils.GenerateToken(id, time.Hour)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		tokens[id] = tok
	}
	return &testServer{router: r, tokens: tokens}
}

func (s *testServer) do(t *testing.T, user, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[user])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

func TestNegotiationOverHTTP(t *testing.T) {
	s := newTestServer(t)

	var ev models.Event
	code := s.do(t, "creator", http.MethodPost, "/api/events", gin.H{
		"name":     "Gala",
		"startAt":  "2030-05-01T18:00:00Z",
		"endAt":    "2030-05-01T23:00:00Z",
		"currency": "USD",
	}, &ev)
	if code != http.StatusCreated || ev.ID == "" {
		t.Fatalf("create event: status %d, %+v", code, ev)
	}

	var offer struct {
		Message models.OfferMessage `json:"message"`
		Warning string              `json:"warning"`
	}
	code = s.do(t, "pro-p", http.MethodPost, "/api/offers/events/"+ev.ID+"/send-offer",
		gin.H{"proposedAmount": 450, "proposedCurrency": "EUR"}, &offer)
	if code != http.StatusCreated {
		t.Fatalf("send offer: status %d", code)
	}
	if offer.Message.ConvertedAmount == nil || *offer.Message.ConvertedAmount != 486 {
		t.Fatalf("converted amount = %v, want 486", offer.Message.ConvertedAmount)
	}

	code = s.do(t, "pro-q", http.MethodPost, "/api/offers/events/"+ev.ID+"/send-offer",
		gin.H{"proposedAmount": 470, "proposedCurrency": "USD"}, nil)
	if code != http.StatusCreated {
		t.Fatalf("second offer: status %d", code)
	}

	var decision models.OfferDecision
	code = s.do(t, "creator", http.MethodPost, "/api/offers/events/"+ev.ID+"/professionals/pro-p/accept", nil, &decision)
	if code != http.StatusOK || !decision.EventLocked || decision.CascadeRejected != 1 {
		t.Fatalf("accept: status %d, %+v", code, decision)
	}

	var apiErr utils.ErrorResponse
	code = s.do(t, "pro-q", http.MethodPost, "/api/offers/events/"+ev.ID+"/send-offer",
		gin.H{"proposedAmount": 400, "proposedCurrency": "USD"}, &apiErr)
	if code != http.StatusConflict || apiErr.Code != string(utils.KindConflict) {
		t.Fatalf("offer after lock: status %d, %+v", code, apiErr)
	}

	var inbox models.Page[models.ThreadSummary]
	code = s.do(t, "creator", http.MethodGet, "/api/offers/inbox?status=accepted", nil, &inbox)
	if code != http.StatusOK || inbox.Total != 1 || inbox.Items[0].Thread.ProfessionalID != "pro-p" {
		t.Fatalf("inbox: status %d, %+v", code, inbox)
	}

	var stats models.InboxStats
	s.do(t, "creator", http.MethodGet, "/api/offers/inbox/stats", nil, &stats)
	if stats.TotalThreads != 2 || stats.AcceptedOffers != 1 {
		t.Errorf("stats = %+v", stats)
	}

	var cal models.CalendarView
	code = s.do(t, "pro-p", http.MethodGet, "/api/calendar/day?date=2030-05-01", nil, &cal)
	if code != http.StatusOK || len(cal.Events) != 1 || cal.Events[0].ID != ev.ID {
		t.Errorf("calendar day: status %d, %+v", code, cal)
	}
}

func TestBusyTimesOverHTTP(t *testing.T) {
	s := newTestServer(t)

	var bt models.BusyTime
	code := s.do(t, "pro-p", http.MethodPost, "/api/busy-times", gin.H{
		"startAt": "2030-03-10T00:00:00Z",
		"endAt":   "2030-03-12T23:59:59Z",
	}, &bt)
	if code != http.StatusCreated {
		t.Fatalf("create busy time: status %d", code)
	}

	var del models.DayDeletion
	code = s.do(t, "pro-p", http.MethodPost, "/api/busy-times/delete-day", gin.H{"day": "2030-03-11"}, &del)
	if code != http.StatusOK || del.Modified != 1 {
		t.Fatalf("delete day: status %d, %+v", code, del)
	}

	var list struct {
		BusyTimes []models.BusyTime `json:"busyTimes"`
	}
	code = s.do(t, "pro-p", http.MethodGet, "/api/busy-times?start_date=2030-03-01&end_date=2030-03-31", nil, &list)
	if code != http.StatusOK || len(list.BusyTimes) != 2 {
		t.Fatalf("list: status %d, %+v", code, list)
	}

	if code := s.do(t, "pro-q", http.MethodDelete, "/api/busy-times/"+list.BusyTimes[0].ID, nil, nil); code != http.StatusForbidden {
		t.Errorf("delete by other user: status %d, want 403", code)
	}
	if code := s.do(t, "pro-p", http.MethodDelete, "/api/busy-times/"+list.BusyTimes[0].ID, nil, nil); code != http.StatusOK {
		t.Errorf("delete own: status %d, want 200", code)
	}
}

func TestAuthAndValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		user   string
		method string
		path   string
		body   any
		want   int
	}{
		{"no token", "", http.MethodGet, "/api/offers/inbox", nil, http.StatusUnauthorized},
		{"bad json", "creator", http.MethodPost, "/api/events", gin.H{"name": "x"}, http.StatusBadRequest},
		{"bad status filter", "creator", http.MethodGet, "/api/offers/inbox?status=maybe", nil, http.StatusBadRequest},
		{"unknown event", "pro-p", http.MethodPost, "/api/offers/events/nope/send-offer", gin.H{"proposedAmount": 1, "proposedCurrency": "USD"}, http.StatusNotFound},
		{"calendar month missing", "creator", http.MethodGet, "/api/calendar/month", nil, http.StatusBadRequest},
		{"bad day", "pro-p", http.MethodPost, "/api/busy-times/delete-day", gin.H{"day": "11/03/2030"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := s.do(t, tt.user, tt.method, tt.path, tt.body, nil); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)
	utils.CheckHealth(context.Background(), nil, nil)

	var body map[string]any
	if code := s.do(t, "", http.MethodGet, "/health", nil, &body); code != http.StatusOK {
		t.Fatalf("health: status %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}
