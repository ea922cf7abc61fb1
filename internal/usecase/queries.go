package usecase

import (
	"context"
	"time"

	"clicktrack/internal/domain"
)

// Queries is the read side of the analytics service. The HTTP layer consumes
// this interface so reads can be wrapped with the TTL cache without the
// handlers knowing.
type Queries interface {
	GetStats(ctx context.Context, asOf time.Time, button string) ([]domain.ButtonStat, error)
	GetHistory(ctx context.Context, days int, asOf time.Time, button string) ([]domain.HistoryPoint, error)
	ListDetails(ctx context.Context, days int, button string, page, limit int) (*domain.DetailPage, error)
}

var _ Queries = (*AnalyticsService)(nil)
