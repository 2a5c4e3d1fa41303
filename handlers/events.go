package handlers

import (
	"net/http"

	"showdan/models"
	"showdan/services/booking"
	"showdan/utils"

	"github.com/gin-gonic/gin"
)

// EventHandler serves event creation and thread opening.
type EventHandler struct {
	Orchestrator booking.BookingOrchestrator
}

func NewEventHandler(orchestrator booking.BookingOrchestrator) *EventHandler {
	return &EventHandler{Orchestrator: orchestrator}
}

// CreateEventHandler handles POST /events.
func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var input models.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	event, err := h.Orchestrator.CreateEvent(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// OpenThreadHandler handles GET /events/:eventID/thread?professional_id=.
func (h *EventHandler) OpenThreadHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	view, err := h.Orchestrator.OpenThread(c.Request.Context(), c.Param("eventID"), userID, c.Query("professional_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
