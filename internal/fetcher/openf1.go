package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/NunoEsteves18/F1-Insights-App/internal/model"
)

// DefaultOpenF1BaseURL is the public OpenF1 REST endpoint.
const DefaultOpenF1BaseURL = "https://api.openf1.org/v1"

// OpenF1Client fetches driver, result and session data from OpenF1.
type OpenF1Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenF1Client creates an OpenF1 client. An empty baseURL selects
// the public endpoint.
func NewOpenF1Client(baseURL string) *OpenF1Client {
	if baseURL == "" {
		baseURL = DefaultOpenF1BaseURL
	}
	return &OpenF1Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Drivers fetches drivers, optionally filtered upstream by exact full
// name. Entries without a full name or car number are dropped.
func (o *OpenF1Client) Drivers(ctx context.Context, fullName string) ([]model.Driver, error) {
	params := url.Values{}
	if fullName != "" {
		params.Set("full_name", fullName)
	}

	var all []model.Driver
	if err := o.getJSON(ctx, "/drivers", params, &all); err != nil {
		return nil, err
	}

	valid := make([]model.Driver, 0, len(all))
	for _, d := range all {
		if d.FullName != "" && d.DriverNumber != 0 {
			valid = append(valid, d)
		}
	}
	return valid, nil
}

// Results fetches a driver's session results, optionally filtered by
// season year.
func (o *OpenF1Client) Results(ctx context.Context, driverNumber, year int) ([]model.DriverResult, error) {
	params := url.Values{}
	params.Set("driver_number", strconv.Itoa(driverNumber))
	if year > 0 {
		params.Set("session_year", strconv.Itoa(year))
	}

	var results []model.DriverResult
	if err := o.getJSON(ctx, "/results", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Session fetches a single session by key. Returns nil when the key is
// unknown upstream.
func (o *OpenF1Client) Session(ctx context.Context, sessionKey int) (*model.Session, error) {
	params := url.Values{}
	params.Set("session_key", strconv.Itoa(sessionKey))

	var sessions []model.Session
	if err := o.getJSON(ctx, "/sessions", params, &sessions); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// RaceSessions fetches every race-type session. The upstream year
// filter is unreliable, so callers filter by year themselves.
func (o *OpenF1Client) RaceSessions(ctx context.Context) ([]model.Session, error) {
	params := url.Values{}
	params.Set("session_type", "Race")

	var sessions []model.Session
	if err := o.getJSON(ctx, "/sessions", params, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (o *OpenF1Client) getJSON(ctx context.Context, path string, params url.Values, v interface{}) error {
	reqURL := o.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("openf1 returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
