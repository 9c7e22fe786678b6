package model

import "time"

// Driver is a driver record from the OpenF1 /drivers endpoint.
// OpenF1 returns one entry per driver per session; lookups deduplicate
// by car number, keeping the most recent session.
type Driver struct {
	FullName      string `json:"full_name"`
	BroadcastName string `json:"broadcast_name,omitempty"`
	NameAcronym   string `json:"name_acronym,omitempty"`
	DriverNumber  int    `json:"driver_number"`
	CountryCode   string `json:"country_code"`
	TeamName      string `json:"team_name,omitempty"`
	TeamColour    string `json:"team_colour,omitempty"`
	HeadshotURL   string `json:"headshot_url,omitempty"`
	SessionKey    int    `json:"session_key,omitempty"`
}

// Session is a session record from the OpenF1 /sessions endpoint.
type Session struct {
	SessionKey       int       `json:"session_key"`
	SessionName      string    `json:"session_name"`
	SessionType      string    `json:"session_type"`
	DateStart        time.Time `json:"date_start"`
	Year             int       `json:"year,omitempty"`
	CircuitShortName string    `json:"circuit_short_name,omitempty"`
	Location         string    `json:"location,omitempty"`
	CountryName      string    `json:"country_name,omitempty"`
}

// DriverResult is one session result for a driver from the OpenF1
// /results endpoint. Position is a pointer because the API reports
// null for sessions without a classified finish.
type DriverResult struct {
	SessionKey   int     `json:"session_key"`
	DriverNumber int     `json:"driver_number"`
	Position     *int    `json:"position"`
	Points       float64 `json:"points"`
	Laps         int     `json:"laps"`
	Status       string  `json:"status,omitempty"`
}

// RaceResult is a DriverResult enriched with session data.
type RaceResult struct {
	DriverResult
	RaceName    string     `json:"race_name"`
	RaceDate    *time.Time `json:"race_date,omitempty"`
	SessionType string     `json:"session_type,omitempty"`
}

// PerformancePoint is one race finish used for the performance chart.
type PerformancePoint struct {
	Race     string    `json:"race"`
	Date     time.Time `json:"date"`
	Position int       `json:"position"`
}

// Race is one calendar entry, a race session filtered by year.
type Race struct {
	SessionKey  int       `json:"session_key"`
	Name        string    `json:"name"`
	Circuit     string    `json:"circuit"`
	Location    string    `json:"location,omitempty"`
	CountryName string    `json:"country_name,omitempty"`
	DateStart   time.Time `json:"date_start"`
	Past        bool      `json:"past"`
}

// Comparison is the AI comparative analysis of two drivers.
type Comparison struct {
	Driver1  string `json:"driver1"`
	Driver2  string `json:"driver2"`
	Year     int    `json:"year"`
	Analysis string `json:"analysis"`
}
