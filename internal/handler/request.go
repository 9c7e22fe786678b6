package handler

import (
	"encoding/json"
	"net/http"
)

// AnalyzeRequest is the news analysis request body. Query is an
// article URL or raw article text.
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// CompareRequest is the driver comparison request body.
type CompareRequest struct {
	Driver1 string `json:"driver1"`
	Driver2 string `json:"driver2"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
