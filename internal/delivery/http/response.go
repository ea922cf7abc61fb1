package http

import (
	"encoding/json"
	"net/http"

	"clicktrack/internal/domain"
	"clicktrack/pkg/problemdetails"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeProblem writes an RFC 7807 Problem Details response.
func writeProblem(w http.ResponseWriter, problem *problemdetails.ProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}

// RecordResponse acknowledges a click submission. Accepted is false when the
// store rejected the write; the caller's primary flow proceeds either way.
type RecordResponse struct {
	Accepted bool `json:"accepted"`
}

// StatsResponse wraps the per-button aggregates.
type StatsResponse struct {
	Stats []domain.ButtonStat `json:"stats"`
}

// HistoryResponse wraps the dense daily series.
type HistoryResponse struct {
	History []domain.HistoryPoint `json:"history"`
}
