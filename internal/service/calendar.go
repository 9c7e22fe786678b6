package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/cache"
	"github.com/NunoEsteves18/F1-Insights-App/internal/fetcher"
	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

// CalendarCacheTTL matches the hour-long cache of the original app.
const CalendarCacheTTL = time.Hour

// CalendarService builds the race calendar for a season.
type CalendarService struct {
	api   fetcher.DriverAPI
	cache cache.Cache
}

// NewCalendarService creates a calendar service.
func NewCalendarService(api fetcher.DriverAPI, c cache.Cache) *CalendarService {
	return &CalendarService{api: api, cache: c}
}

// RacesForYear returns the race sessions of a year, sorted by start
// date. The upstream year filter is unreliable, so all race sessions
// are fetched and filtered here.
func (s *CalendarService) RacesForYear(ctx context.Context, year int) ([]model.Race, error) {
	cacheKey := strconv.Itoa(year)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != nil {
			if races, err := decodeCachedRaces(cached.Data); err == nil {
				log.Printf("[Calendar Service] Cache HIT for %d", year)
				return races, nil
			}
		}
	}

	sessions, err := s.api.RaceSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch race sessions: %w", err)
	}

	now := time.Now()
	races := make([]model.Race, 0)
	for _, session := range sessions {
		if session.DateStart.IsZero() || session.DateStart.Year() != year {
			continue
		}
		races = append(races, model.Race{
			SessionKey:  session.SessionKey,
			Name:        session.SessionName,
			Circuit:     session.CircuitShortName,
			Location:    session.Location,
			CountryName: session.CountryName,
			DateStart:   session.DateStart,
			Past:        session.DateStart.Before(now),
		})
	}

	sort.Slice(races, func(i, j int) bool {
		return races[i].DateStart.Before(races[j].DateStart)
	})

	if s.cache != nil && len(races) > 0 {
		if err := s.cache.Set(ctx, cacheKey, map[string]interface{}{"races": races}, CalendarCacheTTL); err != nil {
			log.Printf("[Calendar Service] Cache write failed: %v", err)
		}
	}

	return races, nil
}

// decodeCachedRaces restores races from cached data, which may have
// gone through a JSON round trip in Postgres or Redis.
func decodeCachedRaces(data map[string]interface{}) ([]model.Race, error) {
	raw, ok := data["races"]
	if !ok {
		return nil, fmt.Errorf("no races in cached data")
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var races []model.Race
	if err := json.Unmarshal(encoded, &races); err != nil {
		return nil, err
	}
	return races, nil
}
