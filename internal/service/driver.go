package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/NunoEsteves18/F1-Insights-App/internal/fetcher"
	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
	"github.com/NunoEsteves18/F1-Insights-App/internal/utils"
)

// DriverService implements the driver lookup pipeline. Lookups go
// straight to OpenF1 on every request; driver records are never cached.
type DriverService struct {
	api fetcher.DriverAPI
}

// NewDriverService creates a driver service.
func NewDriverService(api fetcher.DriverAPI) *DriverService {
	return &DriverService{api: api}
}

// Lookup resolves a query (car number, or free-text name) to driver
// records. An unknown query returns an empty slice, not an error.
func (s *DriverService) Lookup(ctx context.Context, query string) ([]model.Driver, error) {
	all, err := s.api.Drivers(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drivers: %w", err)
	}

	drivers := dedupeDrivers(all)

	query = strings.TrimSpace(query)
	if query == "" {
		return drivers, nil
	}

	matched := make([]model.Driver, 0)
	if number, err := strconv.Atoi(query); err == nil {
		for _, d := range drivers {
			if d.DriverNumber == number {
				matched = append(matched, d)
			}
		}
		return matched, nil
	}

	for _, d := range drivers {
		if utils.NameMatches(d.FullName, query) ||
			utils.NameMatches(d.BroadcastName, query) ||
			strings.EqualFold(d.NameAcronym, query) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

// dedupeDrivers keeps one record per car number, preferring the most
// recent session.
func dedupeDrivers(drivers []model.Driver) []model.Driver {
	latest := make(map[int]model.Driver, len(drivers))
	for _, d := range drivers {
		if prev, ok := latest[d.DriverNumber]; !ok || d.SessionKey > prev.SessionKey {
			latest[d.DriverNumber] = d
		}
	}

	result := make([]model.Driver, 0, len(latest))
	for _, d := range latest {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DriverNumber < result[j].DriverNumber
	})
	return result
}

// Results fetches a driver's results for a year, enriched with the
// race name and date of each session.
func (s *DriverService) Results(ctx context.Context, driverNumber, year int) ([]model.RaceResult, error) {
	results, err := s.api.Results(ctx, driverNumber, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results for driver %d: %w", driverNumber, err)
	}

	// Several results share a session; look each session up once.
	sessions := make(map[int]*model.Session, len(results))

	enriched := make([]model.RaceResult, 0, len(results))
	for _, res := range results {
		rr := model.RaceResult{DriverResult: res, RaceName: "Unknown Race"}

		session, ok := sessions[res.SessionKey]
		if !ok {
			session, err = s.api.Session(ctx, res.SessionKey)
			if err != nil {
				log.Printf("[Driver Service] Session %d lookup failed: %v", res.SessionKey, err)
			}
			sessions[res.SessionKey] = session
		}
		if session != nil {
			rr.RaceName = session.SessionName
			rr.SessionType = session.SessionType
			if !session.DateStart.IsZero() {
				date := session.DateStart
				rr.RaceDate = &date
			}
		}

		enriched = append(enriched, rr)
	}
	return enriched, nil
}

// Performance reduces results to race finishes for the performance
// chart: race sessions with a classified position, sorted by date.
func Performance(results []model.RaceResult) []model.PerformancePoint {
	points := make([]model.PerformancePoint, 0, len(results))
	for _, res := range results {
		if res.SessionType != "Race" || res.Position == nil || res.RaceDate == nil {
			continue
		}
		points = append(points, model.PerformancePoint{
			Race:     res.RaceName,
			Date:     *res.RaceDate,
			Position: *res.Position,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// FormatForPrompt compiles a driver's latest results into the text
// block the AI comparison prompt consumes.
func FormatForPrompt(driverName string, results []model.RaceResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No recent result data available for %s.", driverName)
	}

	lines := []string{fmt.Sprintf("Latest Results for %s (limited to 10):", driverName)}
	for _, res := range results {
		if len(lines) > 10 {
			break
		}

		raceDate := "Unknown Date"
		if res.RaceDate != nil {
			raceDate = res.RaceDate.Format("02/01/2006")
		}
		position := "N/A"
		if res.Position != nil {
			position = strconv.Itoa(*res.Position)
		}
		status := res.Status
		if status == "" {
			status = "N/A"
		}

		lines = append(lines, fmt.Sprintf("- %s (%s): Position %s, Points %g, Laps Completed %d, Status: %s",
			res.RaceName, raceDate, position, res.Points, res.Laps, status))
	}
	return strings.Join(lines, "\n")
}
