package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clicktrack/internal/domain"

	"github.com/google/uuid"
)

const dayKeyFormat = "2006-01-02"

// AnalyticsService implements the click-tracking operations: recording,
// windowed per-button stats, the dense daily history series, and paginated
// raw-event listings. All aggregates are derived on demand from the event
// store; nothing is materialized.
type AnalyticsService struct {
	repo     ClickRepository
	devices  DeviceDetector
	referers SourceClassifier
	now      func() time.Time
}

type Option func(*AnalyticsService)

// WithClock overrides the wall clock, used by tests to pin createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *AnalyticsService) { s.now = now }
}

func NewAnalyticsService(repo ClickRepository, devices DeviceDetector, referers SourceClassifier, opts ...Option) *AnalyticsService {
	s := &AnalyticsService{
		repo:     repo,
		devices:  devices,
		referers: referers,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordInput carries one click submission. UserAgent and IPAddress come
// from the transport layer, never from the caller-supplied body.
type RecordInput struct {
	ButtonName  string
	PageURL     string
	RedirectURL string
	Referrer    string
	UserAgent   string
	IPAddress   string
}

// Record validates and appends exactly one click event with createdAt set to
// the current time. Repeated identical submissions produce distinct rows.
func (s *AnalyticsService) Record(ctx context.Context, in RecordInput) error {
	// The trimmed name is what gets stored: buttonName is the aggregation
	// dimension, and " hero_cta " must not count apart from "hero_cta".
	buttonName := strings.TrimSpace(in.ButtonName)
	if buttonName == "" {
		return domain.ErrEmptyButtonName
	}

	event := domain.ClickEvent{
		ID:            uuid.NewString(),
		ButtonName:    buttonName,
		PageURL:       in.PageURL,
		RedirectURL:   in.RedirectURL,
		Referrer:      in.Referrer,
		UserAgent:     in.UserAgent,
		IPAddress:     in.IPAddress,
		DeviceType:    s.devices.DetectDevice(in.UserAgent),
		TrafficSource: s.referers.ClassifySource(in.Referrer),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.InsertClick(ctx, event); err != nil {
		return fmt.Errorf("insert click: %w", err)
	}
	return nil
}

// GetStats returns per-button aggregates as of the given instant. Output
// order is unspecified; callers must not depend on it.
func (s *AnalyticsService) GetStats(ctx context.Context, asOf time.Time, button string) ([]domain.ButtonStat, error) {
	stats, err := s.repo.ButtonStats(ctx, asOf, button)
	if err != nil {
		return nil, fmt.Errorf("button stats: %w", err)
	}
	return stats, nil
}

// GetHistory returns exactly `days` entries, one per UTC calendar day,
// ending at asOf's date. Days without events appear with zero clicks so the
// series stays dense for charting.
func (s *AnalyticsService) GetHistory(ctx context.Context, days int, asOf time.Time, button string) ([]domain.HistoryPoint, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidDays
	}

	end := asOf.UTC()
	firstDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
	to := firstDay.AddDate(0, 0, days)

	counts, err := s.repo.CountsByDay(ctx, firstDay, to, button)
	if err != nil {
		return nil, fmt.Errorf("counts by day: %w", err)
	}

	points := make([]domain.HistoryPoint, days)
	for i := 0; i < days; i++ {
		key := firstDay.AddDate(0, 0, i).Format(dayKeyFormat)
		points[i] = domain.HistoryPoint{Date: key, Clicks: counts[key]}
	}
	return points, nil
}

// ListDetails returns the trailing `days`-day window of raw events, newest
// first, paginated with a 1-based page. A page past the end yields an empty
// data slice with the correct total.
func (s *AnalyticsService) ListDetails(ctx context.Context, days int, button string, page, limit int) (*domain.DetailPage, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidDays
	}
	if page <= 0 {
		return nil, domain.ErrInvalidPage
	}
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -days)

	total, err := s.repo.CountClicks(ctx, from, to, button)
	if err != nil {
		return nil, fmt.Errorf("count clicks: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	events, err := s.repo.ListClicks(ctx, from, to, button, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list clicks: %w", err)
	}
	if events == nil {
		events = []domain.ClickEvent{}
	}

	return &domain.DetailPage{
		Data:       events,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// PurgeOlderThan removes events recorded before the cutoff. Retention is the
// only delete path; there is no per-event deletion.
func (s *AnalyticsService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete older than %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return deleted, nil
}
