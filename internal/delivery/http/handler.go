// Package http exposes the click-tracking API: a public ingestion endpoint
// and the protected admin query endpoints.
package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"clicktrack/internal/domain"
	"clicktrack/internal/metrics"
	"clicktrack/internal/usecase"
	"clicktrack/pkg/problemdetails"

	"go.uber.org/zap"
)

const (
	defaultDays  = 30
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 200
)

type Handler struct {
	recorder *usecase.AnalyticsService
	queries  usecase.Queries
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewHandler(recorder *usecase.AnalyticsService, queries usecase.Queries, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		recorder: recorder,
		queries:  queries,
		metrics:  m,
		logger:   logger,
	}
}

// RecordRequest is the public ingestion body. User agent and client address
// are read from the request itself so callers cannot spoof them.
type RecordRequest struct {
	ButtonName  string `json:"button_name"`
	PageURL     string `json:"page_url"`
	RedirectURL string `json:"redirect_url"`
	Referrer    string `json:"referrer"`
}

// RecordClick handles POST /api/clicks.
//
// Tracking is fire-and-forget for the front end: validation mistakes get a
// 400, but a store failure is logged and acknowledged with accepted:false so
// the caller's redirect never blocks on analytics.
func (h *Handler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ClicksRejected.Inc()
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request Body",
			"Request body must be valid JSON",
		))
		return
	}

	input := usecase.RecordInput{
		ButtonName:  req.ButtonName,
		PageURL:     req.PageURL,
		RedirectURL: req.RedirectURL,
		Referrer:    req.Referrer,
		UserAgent:   r.UserAgent(),
		IPAddress:   clientIP(r),
	}

	if err := h.recorder.Record(r.Context(), input); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.metrics.ClicksRejected.Inc()
			writeProblem(w, problemdetails.New(
				http.StatusBadRequest,
				problemdetails.TypeValidationError,
				"Validation Failed",
				err.Error(),
			))
			return
		}

		h.metrics.IngestFailures.Inc()
		h.logger.Error("failed to record click",
			zap.String("button_name", req.ButtonName),
			zap.Error(err),
		)
		writeJSON(w, http.StatusAccepted, RecordResponse{Accepted: false})
		return
	}

	h.metrics.ClicksRecorded.Inc()
	writeJSON(w, http.StatusAccepted, RecordResponse{Accepted: true})
}

// GetStats handles GET /api/admin/stats?button=
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	button := r.URL.Query().Get("button")

	stats, err := h.queries.GetStats(r.Context(), time.Now().UTC(), button)
	if err != nil {
		h.logger.Error("failed to compute button stats", zap.Error(err))
		writeProblem(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Failed to compute click statistics",
		))
		return
	}
	if stats == nil {
		stats = []domain.ButtonStat{}
	}

	writeJSON(w, http.StatusOK, StatsResponse{Stats: stats})
}

// GetHistory handles GET /api/admin/history?days=30&button=
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	button := r.URL.Query().Get("button")

	days, err := parsePositiveInt(r.URL.Query().Get("days"), defaultDays)
	if err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeValidationError,
			"Invalid Query Parameters",
			"days must be a positive integer",
		))
		return
	}

	history, err := h.queries.GetHistory(r.Context(), days, time.Now().UTC(), button)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeProblem(w, problemdetails.New(
				http.StatusBadRequest,
				problemdetails.TypeValidationError,
				"Invalid Query Parameters",
				err.Error(),
			))
			return
		}
		h.logger.Error("failed to compute click history", zap.Error(err))
		writeProblem(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Failed to compute click history",
		))
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{History: history})
}

// GetDetails handles GET /api/admin/details?days=30&button=&page=1&limit=50
func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	button := query.Get("button")

	days, err := parsePositiveInt(query.Get("days"), defaultDays)
	if err != nil {
		writeProblem(w, invalidParam("days must be a positive integer"))
		return
	}
	page, err := parsePositiveInt(query.Get("page"), defaultPage)
	if err != nil {
		writeProblem(w, invalidParam("page must be a positive integer"))
		return
	}
	limit, err := parsePositiveInt(query.Get("limit"), defaultLimit)
	if err != nil {
		writeProblem(w, invalidParam("limit must be a positive integer"))
		return
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	details, err := h.queries.ListDetails(r.Context(), days, button, page, limit)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeProblem(w, invalidParam(err.Error()))
			return
		}
		h.logger.Error("failed to list click details", zap.Error(err))
		writeProblem(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Failed to list click details",
		))
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func invalidParam(detail string) *problemdetails.ProblemDetail {
	return problemdetails.New(
		http.StatusBadRequest,
		problemdetails.TypeValidationError,
		"Invalid Query Parameters",
		detail,
	)
}

// parsePositiveInt parses a query parameter that must be a positive integer,
// falling back to a default when absent. Malformed values are an error, not
// silently coerced.
func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// clientIP extracts the client address. chi's RealIP middleware has already
// folded X-Forwarded-For / X-Real-IP into RemoteAddr when present, so the
// stored address is best effort behind proxies.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
