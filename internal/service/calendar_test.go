package service

import (
	"context"
	"testing"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/cache"
	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

func calendarSessions() map[int]*model.Session {
	return map[int]*model.Session{
		// Deliberately out of order and mixed across years
		9400: {SessionKey: 9400, SessionName: "Monaco Grand Prix", SessionType: "Race",
			CircuitShortName: "Monaco", Location: "Monte Carlo", CountryName: "Monaco",
			DateStart: time.Date(2024, 5, 26, 13, 0, 0, 0, time.UTC)},
		9200: {SessionKey: 9200, SessionName: "Bahrain Grand Prix", SessionType: "Race",
			CircuitShortName: "Sakhir", Location: "Sakhir", CountryName: "Bahrain",
			DateStart: time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)},
		9900: {SessionKey: 9900, SessionName: "Abu Dhabi Grand Prix", SessionType: "Race",
			CircuitShortName: "Yas Marina", Location: "Yas Island", CountryName: "UAE",
			DateStart: time.Date(2023, 11, 26, 13, 0, 0, 0, time.UTC)},
		9410: {SessionKey: 9410, SessionName: "Monaco Qualifying", SessionType: "Qualifying",
			DateStart: time.Date(2024, 5, 25, 14, 0, 0, 0, time.UTC)},
	}
}

func TestRacesForYear(t *testing.T) {
	svc := NewCalendarService(&fakeDriverAPI{sessions: calendarSessions()}, nil)

	races, err := svc.RacesForYear(context.Background(), 2024)
	if err != nil {
		t.Fatalf("RacesForYear() error: %v", err)
	}
	if len(races) != 2 {
		t.Fatalf("got %d races, want 2", len(races))
	}
	if races[0].Name != "Bahrain Grand Prix" || races[1].Name != "Monaco Grand Prix" {
		t.Errorf("races not sorted by date: %+v", races)
	}
	if !races[0].Past {
		t.Errorf("2024 race should be marked past")
	}
	if races[0].Circuit != "Sakhir" || races[0].CountryName != "Bahrain" {
		t.Errorf("race fields not carried over: %+v", races[0])
	}
}

func TestRacesForYearNoRaces(t *testing.T) {
	svc := NewCalendarService(&fakeDriverAPI{sessions: calendarSessions()}, nil)

	races, err := svc.RacesForYear(context.Background(), 2030)
	if err != nil {
		t.Fatalf("RacesForYear() error: %v", err)
	}
	if len(races) != 0 {
		t.Fatalf("got %d races, want 0", len(races))
	}
}

func TestRacesForYearCached(t *testing.T) {
	api := &fakeDriverAPI{sessions: calendarSessions()}
	svc := NewCalendarService(api, cache.NewMemoryCache("calendar"))

	first, err := svc.RacesForYear(context.Background(), 2024)
	if err != nil {
		t.Fatalf("first RacesForYear() error: %v", err)
	}
	second, err := svc.RacesForYear(context.Background(), 2024)
	if err != nil {
		t.Fatalf("second RacesForYear() error: %v", err)
	}

	if api.sessionsCalls != 1 {
		t.Errorf("sessions fetches = %d, want 1", api.sessionsCalls)
	}
	if len(second) != len(first) {
		t.Fatalf("cached result size %d, want %d", len(second), len(first))
	}
	for i := range first {
		if second[i].SessionKey != first[i].SessionKey || !second[i].DateStart.Equal(first[i].DateStart) {
			t.Errorf("cached race %d differs: %+v vs %+v", i, second[i], first[i])
		}
	}
}

func TestDecodeCachedRaces(t *testing.T) {
	// Shape after a JSON round trip through Postgres or Redis
	data := map[string]interface{}{
		"races": []interface{}{
			map[string]interface{}{
				"session_key": float64(9200),
				"name":        "Bahrain Grand Prix",
				"date_start":  "2024-03-02T15:00:00Z",
				"past":        true,
			},
		},
	}

	races, err := decodeCachedRaces(data)
	if err != nil {
		t.Fatalf("decodeCachedRaces() error: %v", err)
	}
	if len(races) != 1 {
		t.Fatalf("got %d races, want 1", len(races))
	}
	if races[0].SessionKey != 9200 || races[0].Name != "Bahrain Grand Prix" || !races[0].Past {
		t.Errorf("unexpected race: %+v", races[0])
	}

	if _, err := decodeCachedRaces(map[string]interface{}{}); err == nil {
		t.Error("decodeCachedRaces() without races key should fail")
	}
}
