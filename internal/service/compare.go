package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/fetcher"
	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

// CompareService builds AI comparative analyses of two drivers from
// their current-season results.
type CompareService struct {
	drivers *DriverService
	llm     fetcher.LLMClient
}

// NewCompareService creates a compare service.
func NewCompareService(drivers *DriverService, llm fetcher.LLMClient) *CompareService {
	return &CompareService{drivers: drivers, llm: llm}
}

// Compare resolves both driver names, compiles their latest results
// and asks the model for a comparison.
func (s *CompareService) Compare(ctx context.Context, name1, name2 string) (*model.Comparison, error) {
	name1 = strings.TrimSpace(name1)
	name2 = strings.TrimSpace(name2)
	if name1 == "" || name2 == "" {
		return nil, fmt.Errorf("two driver names are required")
	}
	if strings.EqualFold(name1, name2) {
		return nil, fmt.Errorf("please select two different drivers to compare")
	}

	driver1, err := s.resolveDriver(ctx, name1)
	if err != nil {
		return nil, err
	}
	driver2, err := s.resolveDriver(ctx, name2)
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	log.Printf("[Compare Service] Comparing %s vs %s for %d", driver1.FullName, driver2.FullName, year)

	results1, err := s.drivers.Results(ctx, driver1.DriverNumber, year)
	if err != nil {
		return nil, err
	}
	results2, err := s.drivers.Results(ctx, driver2.DriverNumber, year)
	if err != nil {
		return nil, err
	}

	data1 := FormatForPrompt(driver1.FullName, results1)
	data2 := FormatForPrompt(driver2.FullName, results2)

	analysis, err := s.llm.CompareDrivers(ctx, data1, data2)
	if err != nil {
		return nil, fmt.Errorf("failed to generate comparison: %w", err)
	}

	return &model.Comparison{
		Driver1:  driver1.FullName,
		Driver2:  driver2.FullName,
		Year:     year,
		Analysis: analysis,
	}, nil
}

func (s *CompareService) resolveDriver(ctx context.Context, name string) (*model.Driver, error) {
	matches, err := s.drivers.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("driver not found: %s", name)
	}
	return &matches[0], nil
}
