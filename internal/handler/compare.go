package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/NunoEsteves18/F1-Insights-App/internal/fetcher"
	"github.com/NunoEsteves18/F1-Insights-App/internal/service"
)

// CompareHandler serves AI driver comparison requests.
type CompareHandler struct {
	service *service.CompareService
}

// NewCompareHandler creates a compare handler.
func NewCompareHandler(svc *service.CompareService) *CompareHandler {
	return &CompareHandler{service: svc}
}

// Compare handles POST /api/analyze/compare.
// Body: {"driver1": "...", "driver2": "..."}
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Driver1 == "" || req.Driver2 == "" {
		writeError(w, http.StatusBadRequest, "driver1 and driver2 are required")
		return
	}

	log.Printf("Starting comparison: %s vs %s", req.Driver1, req.Driver2)

	comparison, err := h.service.Compare(r.Context(), req.Driver1, req.Driver2)
	if err != nil {
		log.Printf("Comparison error for %s vs %s: %v", req.Driver1, req.Driver2, err)
		writeError(w, compareStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}

func compareStatus(err error) int {
	switch {
	case errors.Is(err, fetcher.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	case strings.Contains(err.Error(), "required"), strings.Contains(err.Error(), "different drivers"):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
