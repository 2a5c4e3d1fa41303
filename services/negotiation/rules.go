package negotiation

import (
	"showdan/models"
	"showdan/utils"
)

// Conflict messages callers can match on.
const (
	MsgEventLocked      = "event locked"
	MsgAcceptedByOther  = "event already accepted by another professional"
	MsgWrongRole        = "wrong role"
	MsgNotParticipant   = "not participant"
	MsgOwnEventOffer    = "you cannot make an offer on your own event"
	MsgEventNotPosted   = "event is not open for offers"
	MsgOfferNotPending  = "offer is no longer pending"
	MsgThreadMismatched = "thread does not belong to this event"
)

// CheckSendOffer guards a professional's priced proposal.
func CheckSendOffer(event models.Event, actor models.User) error {
	if !actor.IsProfessional() {
		return utils.NewForbidden(MsgWrongRole)
	}
	if actor.ID == event.OwnerID {
		return utils.NewForbidden(MsgOwnEventOffer)
	}
	if event.IsLocked {
		return utils.NewConflict(MsgEventLocked)
	}
	return nil
}

// CheckCounter guards the creator's priced reply.
func CheckCounter(event models.Event, thread models.OfferThread, actorID string) error {
	if thread.EventID != event.ID {
		return utils.NewInvalidArgument(MsgThreadMismatched)
	}
	if actorID != event.OwnerID {
		return utils.NewForbidden(MsgNotParticipant)
	}
	if event.IsLocked {
		return utils.NewConflict(MsgEventLocked)
	}
	return nil
}

// CheckChat allows either participant while the event is open, and only the
// accepted thread once it is locked.
func CheckChat(event models.Event, thread models.OfferThread, actorID string) error {
	if thread.EventID != event.ID {
		return utils.NewInvalidArgument(MsgThreadMismatched)
	}
	if actorID != event.OwnerID && actorID != thread.ProfessionalID {
		return utils.NewForbidden(MsgNotParticipant)
	}
	if event.IsLocked && event.AcceptedThreadID != thread.ID {
		return utils.NewConflict(MsgAcceptedByOther)
	}
	return nil
}

// CanChat is CheckChat as a permission flag.
func CanChat(event models.Event, thread models.OfferThread, actorID string) bool {
	return CheckChat(event, thread, actorID) == nil
}

// CheckDecision guards accept and reject of the thread's latest priced message.
// Accept also needs the event open.
func CheckDecision(event models.Event, thread models.OfferThread, latest models.OfferMessage, actorID string, accepting bool) error {
	if thread.EventID != event.ID {
		return utils.NewInvalidArgument(MsgThreadMismatched)
	}
	if actorID != event.OwnerID {
		return utils.NewForbidden(MsgNotParticipant)
	}
	if event.IsLocked && event.AcceptedThreadID != thread.ID {
		return utils.NewConflict(MsgAcceptedByOther)
	}
	if accepting && event.IsLocked {
		return utils.NewConflict(MsgEventLocked)
	}
	if latest.Status != models.OfferPending {
		return utils.NewConflict("%s: it was %s", MsgOfferNotPending, latest.Status)
	}
	return nil
}
