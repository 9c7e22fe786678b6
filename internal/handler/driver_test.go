package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
	"github.com/NunoEsteves18/F1-Insights-App/internal/service"
)

type stubDriverAPI struct{}

func (stubDriverAPI) Drivers(ctx context.Context, fullName string) ([]model.Driver, error) {
	return []model.Driver{
		{FullName: "Max VERSTAPPEN", NameAcronym: "VER", DriverNumber: 1, SessionKey: 9222},
		{FullName: "Lewis HAMILTON", NameAcronym: "HAM", DriverNumber: 44, SessionKey: 9222},
	}, nil
}

func (stubDriverAPI) Results(ctx context.Context, driverNumber, year int) ([]model.DriverResult, error) {
	position := 1
	return []model.DriverResult{
		{SessionKey: 9222, DriverNumber: driverNumber, Position: &position, Points: 25, Laps: 57, Status: "Finished"},
	}, nil
}

func (stubDriverAPI) Session(ctx context.Context, sessionKey int) (*model.Session, error) {
	return &model.Session{
		SessionKey:  sessionKey,
		SessionName: "Bahrain Grand Prix",
		SessionType: "Race",
		DateStart:   time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC),
	}, nil
}

func (stubDriverAPI) RaceSessions(ctx context.Context) ([]model.Session, error) {
	return nil, nil
}

func newDriverHandler() *DriverHandler {
	return NewDriverHandler(service.NewDriverService(stubDriverAPI{}))
}

func TestLookupHandler(t *testing.T) {
	h := newDriverHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/drivers?q=hamilton", nil)
	rec := httptest.NewRecorder()
	h.Lookup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var drivers []model.Driver
	if err := json.Unmarshal(rec.Body.Bytes(), &drivers); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(drivers) != 1 || drivers[0].DriverNumber != 44 {
		t.Errorf("unexpected drivers: %+v", drivers)
	}
}

func TestLookupHandlerUnknownDriver(t *testing.T) {
	h := newDriverHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/drivers?q=kubica", nil)
	rec := httptest.NewRecorder()
	h.Lookup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// Unknown queries produce an empty list, not an error
	if body := rec.Body.String(); body != "[]\n" && body != "[]" {
		t.Errorf("body = %q, want empty list", body)
	}
}

func TestLookupHandlerMethodNotAllowed(t *testing.T) {
	h := newDriverHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/drivers", nil)
	rec := httptest.NewRecorder()
	h.Lookup(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestResultsHandler(t *testing.T) {
	h := newDriverHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/drivers/results?driver_number=1&year=2024", nil)
	rec := httptest.NewRecorder()
	h.Results(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		DriverNumber int                      `json:"driver_number"`
		Year         int                      `json:"year"`
		Results      []model.RaceResult       `json:"results"`
		Performance  []model.PerformancePoint `json:"performance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.DriverNumber != 1 || resp.Year != 2024 {
		t.Errorf("unexpected echo: %+v", resp)
	}
	if len(resp.Results) != 1 || resp.Results[0].RaceName != "Bahrain Grand Prix" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
	if len(resp.Performance) != 1 || resp.Performance[0].Position != 1 {
		t.Errorf("unexpected performance: %+v", resp.Performance)
	}
}

func TestResultsHandlerValidation(t *testing.T) {
	h := newDriverHandler()

	testCases := []string{
		"/api/drivers/results",
		"/api/drivers/results?driver_number=abc",
		"/api/drivers/results?driver_number=0",
		"/api/drivers/results?driver_number=1&year=nope",
	}

	for _, target := range testCases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.Results(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}
