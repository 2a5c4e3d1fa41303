package negotiation

import (
	"errors"
	"testing"

	"showdan/database"
	"showdan/models"
	"showdan/utils"
)

func TestCheckDecision(t *testing.T) {
	open := models.Event{ID: "e", OwnerID: "c"}
	lockedHere := models.Event{ID: "e", OwnerID: "c", IsLocked: true, AcceptedThreadID: "t", AcceptedProfessionalID: "p"}
	lockedElsewhere := models.Event{ID: "e", OwnerID: "c", IsLocked: true, AcceptedThreadID: "other"}
	thread := models.OfferThread{ID: "t", EventID: "e", ProfessionalID: "p"}
	pending := models.OfferMessage{Status: models.OfferPending}
	rejected := models.OfferMessage{Status: models.OfferRejected}

	tests := []struct {
		name      string
		event     models.Event
		latest    models.OfferMessage
		actor     string
		accepting bool
		want      utils.ErrorKind
	}{
		{"accept pending", open, pending, "c", true, ""},
		{"reject pending", open, pending, "c", false, ""},
		{"not owner", open, pending, "p", true, utils.KindForbidden},
		{"accept on locked event", lockedHere, pending, "c", true, utils.KindConflict},
		{"reject on locked event keeps pending rule", lockedHere, pending, "c", false, ""},
		{"accepted elsewhere", lockedElsewhere, pending, "c", false, utils.KindConflict},
		{"not pending", open, rejected, "c", false, utils.KindConflict},
		{"other event", models.Event{ID: "x", OwnerID: "c"}, pending, "c", true, utils.KindInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDecision(tt.event, thread, tt.latest, tt.actor, tt.accepting)
			if got := utils.KindOf(err); got != tt.want {
				t.Fatalf("kind = %q, want %q (%v)", got, tt.want, err)
			}
		})
	}
}

func TestCheckChat(t *testing.T) {
	thread := models.OfferThread{ID: "t", EventID: "e", ProfessionalID: "p"}
	tests := []struct {
		name  string
		event models.Event
		actor string
		want  utils.ErrorKind
	}{
		{"professional on open event", models.Event{ID: "e", OwnerID: "c"}, "p", ""},
		{"owner on open event", models.Event{ID: "e", OwnerID: "c"}, "c", ""},
		{"outsider", models.Event{ID: "e", OwnerID: "c"}, "x", utils.KindForbidden},
		{"accepted thread", models.Event{ID: "e", OwnerID: "c", IsLocked: true, AcceptedThreadID: "t"}, "p", ""},
		{"other thread accepted", models.Event{ID: "e", OwnerID: "c", IsLocked: true, AcceptedThreadID: "u"}, "c", utils.KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.KindOf(CheckChat(tt.event, thread, tt.actor)); got != tt.want {
				t.Fatalf("kind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckSendOffer(t *testing.T) {
	pro := models.User{ID: "p", AccountType: models.AccountProfessional}
	if err := CheckSendOffer(models.Event{OwnerID: "c"}, pro); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utils.IsKind(CheckSendOffer(models.Event{OwnerID: "c"}, models.User{ID: "u"}), utils.KindForbidden) {
		t.Fatal("personal accounts cannot send offers")
	}
	if !utils.IsKind(CheckSendOffer(models.Event{OwnerID: "p"}, pro), utils.KindForbidden) {
		t.Fatal("owners cannot offer on their own event")
	}
	if !utils.IsKind(CheckSendOffer(models.Event{OwnerID: "c", IsLocked: true}, pro), utils.KindConflict) {
		t.Fatal("locked events refuse offers")
	}
}

func TestConditionErrorKeepsMessageVerbatim(t *testing.T) {
	err := conditionError(database.ErrConditionFailed, "offer at 100% was withdrawn")
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Kind != utils.KindConflict || appErr.Message != "offer at 100% was withdrawn" {
		t.Fatalf("unexpected error %#v", err)
	}
	other := errors.New("boom")
	if got := conditionError(other, "ignored"); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
}
