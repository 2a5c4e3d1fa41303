package handlers

import (
	"net/http"

	"showdan/models"
	"showdan/services/availability"
	"showdan/utils"

	"github.com/gin-gonic/gin"
)

// BusyTimeHandler serves the caller's own busy ranges.
type BusyTimeHandler struct {
	Availability availability.AvailabilityService
}

func NewBusyTimeHandler(svc availability.AvailabilityService) *BusyTimeHandler {
	return &BusyTimeHandler{Availability: svc}
}

// CreateBusyTimeHandler handles POST /busy-times.
func (h *BusyTimeHandler) CreateBusyTimeHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var input models.BusyTimeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	bt, err := h.Availability.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bt)
}

// ListBusyTimesHandler handles GET /busy-times?start_date=&end_date=.
func (h *BusyTimeHandler) ListBusyTimesHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	list, err := h.Availability.ListRange(c.Request.Context(), userID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busyTimes": list})
}

// DeleteBusyTimeHandler handles DELETE /busy-times/:id.
func (h *BusyTimeHandler) DeleteBusyTimeHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.Availability.DeleteOne(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Busy time deleted"})
}

// DeleteBusyDayHandler handles POST /busy-times/delete-day with {"day": "YYYY-MM-DD"}.
func (h *BusyTimeHandler) DeleteBusyDayHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var input struct {
		Day string `json:"day" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	res, err := h.Availability.DeleteForDay(c.Request.Context(), userID, input.Day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
