package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/service"
)

// DriverHandler serves driver lookup and results requests.
type DriverHandler struct {
	service *service.DriverService
}

// NewDriverHandler creates a driver handler.
func NewDriverHandler(svc *service.DriverService) *DriverHandler {
	return &DriverHandler{service: svc}
}

// Lookup handles GET /api/drivers?q=<number or name>. Unknown queries
// return an empty list.
func (h *DriverHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query().Get("q")
	drivers, err := h.service.Lookup(r.Context(), query)
	if err != nil {
		log.Printf("Driver lookup error for %q: %v", query, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, drivers)
}

// Results handles GET /api/drivers/results?driver_number=&year=.
// The response carries the raw results plus the performance series for
// the chart. Year defaults to the current season.
func (h *DriverHandler) Results(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	driverNumber, err := strconv.Atoi(r.URL.Query().Get("driver_number"))
	if err != nil || driverNumber <= 0 {
		writeError(w, http.StatusBadRequest, "driver_number is required")
		return
	}

	year := time.Now().Year()
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		year, err = strconv.Atoi(yearParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
	}

	results, err := h.service.Results(r.Context(), driverNumber, year)
	if err != nil {
		log.Printf("Driver results error for %d: %v", driverNumber, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"driver_number": driverNumber,
		"year":          year,
		"results":       results,
		"performance":   service.Performance(results),
	})
}

// Health handles GET /health.
func (h *DriverHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
