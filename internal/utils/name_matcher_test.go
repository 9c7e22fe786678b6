package utils

import (
	"testing"
)

func TestNameMatches(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  bool
	}{
		{"Max Verstappen", "verstappen", true},
		{"Max Verstappen", "max verstappen", true},
		{"Max Verstappen", "m verstappen", true},
		{"Max Verstappen", "MAX", true},
		{"Lewis Hamilton", "hamil", true},
		{"Charles Leclerc", "lec", true},
		{"Charles Leclerc", "sainz", false},
		{"Lando Norris", "norris lando", true},
		{"Lando Norris", "", false},
		{"", "norris", false},
	}

	for _, tc := range testCases {
		if got := NameMatches(tc.name, tc.query); got != tc.want {
			t.Errorf("NameMatches(%q, %q) = %v, want %v", tc.name, tc.query, got, tc.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"  Max   Verstappen ", "max verstappen"},
		{"LEWIS Hamilton", "lewis hamilton"},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
