package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/service"
)

// CalendarHandler serves race calendar requests.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler creates a calendar handler.
func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// Calendar handles GET /api/calendar?year=. Year defaults to the
// current one.
func (h *CalendarHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year := time.Now().Year()
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}

	races, err := h.service.RacesForYear(r.Context(), year)
	if err != nil {
		log.Printf("Calendar error for %d: %v", year, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":  year,
		"races": races,
	})
}
