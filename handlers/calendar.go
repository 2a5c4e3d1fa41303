package handlers

import (
	"net/http"
	"strconv"

	"showdan/services/calendar"
	"showdan/utils"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	Calendar *calendar.CalendarService
}

func NewCalendarHandler(svc *calendar.CalendarService) *CalendarHandler {
	return &CalendarHandler{Calendar: svc}
}

// CalendarMonthHandler handles GET /calendar/month?year=&month=.
func (h *CalendarHandler) CalendarMonthHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "year and month are required integers")
		return
	}
	view, err := h.Calendar.Month(c.Request.Context(), userID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CalendarDayHandler handles GET /calendar/day?date=YYYY-MM-DD.
func (h *CalendarHandler) CalendarDayHandler(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	view, err := h.Calendar.Day(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
