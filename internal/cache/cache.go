// Package cache is a read-side TTL cache over the analytics queries. It
// replaces the client-side query cache the admin dashboard used to carry:
// entries are keyed by the full filter parameters and expire after a fixed
// staleness window, so the dashboard polls cheap and slightly stale data.
package cache

import (
	"context"
	"fmt"
	"time"

	"clicktrack/internal/domain"
	"clicktrack/internal/usecase"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedQueries decorates usecase.Queries with per-filter TTL caching.
//
// The asOf instant is deliberately left out of the cache keys: every request
// carries a fresh "now", so keying on it would defeat the cache entirely.
// Staleness is bounded by the TTL instead, which is the documented freshness
// contract for the dashboard.
type CachedQueries struct {
	inner   usecase.Queries
	stats   *lru.LRU[string, []domain.ButtonStat]
	history *lru.LRU[string, []domain.HistoryPoint]
	details *lru.LRU[string, *domain.DetailPage]
}

func New(inner usecase.Queries, size int, ttl time.Duration) *CachedQueries {
	if size < 16 {
		size = 16
	}
	return &CachedQueries{
		inner:   inner,
		stats:   lru.NewLRU[string, []domain.ButtonStat](size, nil, ttl),
		history: lru.NewLRU[string, []domain.HistoryPoint](size, nil, ttl),
		details: lru.NewLRU[string, *domain.DetailPage](size, nil, ttl),
	}
}

var _ usecase.Queries = (*CachedQueries)(nil)

func (c *CachedQueries) GetStats(ctx context.Context, asOf time.Time, button string) ([]domain.ButtonStat, error) {
	key := "stats|" + button
	if cached, ok := c.stats.Get(key); ok {
		return cached, nil
	}

	result, err := c.inner.GetStats(ctx, asOf, button)
	if err != nil {
		return nil, err
	}
	c.stats.Add(key, result)
	return result, nil
}

func (c *CachedQueries) GetHistory(ctx context.Context, days int, asOf time.Time, button string) ([]domain.HistoryPoint, error) {
	key := fmt.Sprintf("history|%d|%s", days, button)
	if cached, ok := c.history.Get(key); ok {
		return cached, nil
	}

	result, err := c.inner.GetHistory(ctx, days, asOf, button)
	if err != nil {
		return nil, err
	}
	c.history.Add(key, result)
	return result, nil
}

func (c *CachedQueries) ListDetails(ctx context.Context, days int, button string, page, limit int) (*domain.DetailPage, error) {
	key := fmt.Sprintf("details|%d|%s|%d|%d", days, button, page, limit)
	if cached, ok := c.details.Get(key); ok {
		return cached, nil
	}

	result, err := c.inner.ListDetails(ctx, days, button, page, limit)
	if err != nil {
		return nil, err
	}
	c.details.Add(key, result)
	return result, nil
}

// Purge drops all cached entries. Called after the retention job runs so the
// dashboard never serves aggregates that include purged rows for a full TTL.
func (c *CachedQueries) Purge() {
	c.stats.Purge()
	c.history.Purge()
	c.details.Purge()
}
