package usecase

import (
	"context"
	"time"

	"clicktrack/internal/domain"
)

type ClickRepository interface {
	// InsertClick appends a single click event. Events are write-once.
	InsertClick(ctx context.Context, event domain.ClickEvent) error
	// ButtonStats returns per-button totals and trailing-window counts as of
	// the given instant. Windows are half-open [asOf-window, asOf). An empty
	// button selects all buttons. Buttons with no recorded events never appear.
	ButtonStats(ctx context.Context, asOf time.Time, button string) ([]domain.ButtonStat, error)
	// CountsByDay returns click counts grouped by UTC calendar day for events
	// with createdAt in [from, to). Keys use the "2006-01-02" form. Days with
	// no events are absent; the service densifies the series.
	CountsByDay(ctx context.Context, from, to time.Time, button string) (map[string]int64, error)
	// ListClicks returns events with createdAt in [from, to), newest first,
	// with limit/offset paging.
	ListClicks(ctx context.Context, from, to time.Time, button string, limit, offset int) ([]domain.ClickEvent, error)
	// CountClicks returns the number of events with createdAt in [from, to).
	CountClicks(ctx context.Context, from, to time.Time, button string) (int64, error)
	// DeleteOlderThan removes events with createdAt strictly before the cutoff
	// and reports how many rows were removed. Used only by the retention job.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DeviceDetector classifies a User-Agent string into a coarse device type.
type DeviceDetector interface {
	DetectDevice(userAgent string) string
}

// SourceClassifier classifies a referrer URL into a traffic source bucket.
type SourceClassifier interface {
	ClassifySource(referrer string) string
}
