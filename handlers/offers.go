package handlers

import (
	"net/http"

	"showdan/models"
	"showdan/services/booking"
	"showdan/services/negotiation"
	"showdan/utils"

	"github.com/gin-gonic/gin"
)

// OfferHandler serves the negotiation endpoints.
type OfferHandler struct {
	Orchestrator booking.BookingOrchestrator
	Inbox        *negotiation.Inbox
}

func NewOfferHandler(orchestrator booking.BookingOrchestrator, inbox *negotiation.Inbox) *OfferHandler {
	return &OfferHandler{Orchestrator: orchestrator, Inbox: inbox}
}

// SendOfferHandler handles POST /offers/events/:eventID/send-offer.
func (h *OfferHandler) SendOfferHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var input models.SendOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	res, err := h.Orchestrator.SendOffer(c.Request.Context(), c.Param("eventID"), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CounterOfferHandler handles POST /offers/threads/:threadID/counter-offer.
func (h *OfferHandler) CounterOfferHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var input models.CounterOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	res, err := h.Orchestrator.CounterOffer(c.Request.Context(), c.Param("threadID"), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ChatHandler handles POST /offers/threads/:threadID/chat.
func (h *OfferHandler) ChatHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var input models.ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	res, err := h.Orchestrator.Chat(c.Request.Context(), c.Param("threadID"), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// AcceptOfferHandler handles POST /offers/events/:eventID/professionals/:proID/accept.
func (h *OfferHandler) AcceptOfferHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	decision, err := h.Orchestrator.AcceptOffer(c.Request.Context(), c.Param("eventID"), c.Param("proID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// RejectOfferHandler handles POST /offers/events/:eventID/professionals/:proID/reject.
func (h *OfferHandler) RejectOfferHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	decision, err := h.Orchestrator.RejectOffer(c.Request.Context(), c.Param("eventID"), c.Param("proID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// QuickBookingHandler handles POST /offers/quick-booking.
func (h *OfferHandler) QuickBookingHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var input models.QuickBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	res, err := h.Orchestrator.QuickBooking(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// InboxHandler handles GET /offers/inbox?status=&page=&page_size=.
func (h *OfferHandler) InboxHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	page, err := h.Inbox.ListThreads(c.Request.Context(), userID, c.DefaultQuery("status", negotiation.StatusAll),
		queryInt(c, "page"), queryInt(c, "page_size"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// InboxStatsHandler handles GET /offers/inbox/stats.
func (h *OfferHandler) InboxStatsHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	stats, err := h.Inbox.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ThreadMessagesHandler handles GET /offers/threads/:threadID/messages.
func (h *OfferHandler) ThreadMessagesHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	page, err := h.Inbox.ListMessages(c.Request.Context(), c.Param("threadID"), userID,
		queryInt(c, "page"), queryInt(c, "page_size"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
