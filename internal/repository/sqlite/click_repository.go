// Package sqlite implements the click event store over database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clicktrack/internal/domain"
	"clicktrack/internal/usecase"
)

// ClickRepository is the SQLite-backed event store. Timestamps are persisted
// as unix milliseconds; all range comparisons are half-open [from, to).
type ClickRepository struct {
	db *sql.DB
}

func NewClickRepository(db *sql.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

// Ensure ClickRepository implements usecase.ClickRepository at compile time.
var _ usecase.ClickRepository = (*ClickRepository)(nil)

func (r *ClickRepository) InsertClick(ctx context.Context, event domain.ClickEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO click_events (id, button_name, page_url, redirect_url, referrer, user_agent, ip_address, device_type, traffic_source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.ButtonName,
		event.PageURL,
		event.RedirectURL,
		event.Referrer,
		event.UserAgent,
		event.IPAddress,
		event.DeviceType,
		event.TrafficSource,
		event.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert click event: %w", err)
	}
	return nil
}

func (r *ClickRepository) ButtonStats(ctx context.Context, asOf time.Time, button string) ([]domain.ButtonStat, error) {
	asOfMs := asOf.UnixMilli()
	d24 := asOf.Add(-24 * time.Hour).UnixMilli()
	d7 := asOf.Add(-7 * 24 * time.Hour).UnixMilli()
	d30 := asOf.Add(-30 * 24 * time.Hour).UnixMilli()

	rows, err := r.db.QueryContext(ctx, `
		SELECT button_name,
		       COUNT(*),
		       SUM(CASE WHEN created_at >= ? AND created_at < ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN created_at >= ? AND created_at < ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN created_at >= ? AND created_at < ? THEN 1 ELSE 0 END)
		FROM click_events
		WHERE (? = '' OR button_name = ?)
		GROUP BY button_name`,
		d24, asOfMs, d7, asOfMs, d30, asOfMs, button, button,
	)
	if err != nil {
		return nil, fmt.Errorf("query button stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.ButtonStat
	for rows.Next() {
		var s domain.ButtonStat
		if err := rows.Scan(&s.ButtonName, &s.TotalClicks, &s.Last24Hours, &s.Last7Days, &s.Last30Days); err != nil {
			return nil, fmt.Errorf("scan button stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate button stats: %w", err)
	}
	return stats, nil
}

func (r *ClickRepository) CountsByDay(ctx context.Context, from, to time.Time, button string) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m-%d', created_at / 1000, 'unixepoch') AS day, COUNT(*)
		FROM click_events
		WHERE created_at >= ? AND created_at < ? AND (? = '' OR button_name = ?)
		GROUP BY day`,
		from.UnixMilli(), to.UnixMilli(), button, button,
	)
	if err != nil {
		return nil, fmt.Errorf("query counts by day: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var day string
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		counts[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day counts: %w", err)
	}
	return counts, nil
}

func (r *ClickRepository) ListClicks(ctx context.Context, from, to time.Time, button string, limit, offset int) ([]domain.ClickEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, button_name, page_url, redirect_url, referrer, user_agent, ip_address, device_type, traffic_source, created_at
		FROM click_events
		WHERE created_at >= ? AND created_at < ? AND (? = '' OR button_name = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		from.UnixMilli(), to.UnixMilli(), button, button, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query click details: %w", err)
	}
	defer rows.Close()

	var events []domain.ClickEvent
	for rows.Next() {
		var e domain.ClickEvent
		var createdAtMs int64
		if err := rows.Scan(&e.ID, &e.ButtonName, &e.PageURL, &e.RedirectURL, &e.Referrer, &e.UserAgent, &e.IPAddress, &e.DeviceType, &e.TrafficSource, &createdAtMs); err != nil {
			return nil, fmt.Errorf("scan click event: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAtMs).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate click events: %w", err)
	}
	return events, nil
}

func (r *ClickRepository) CountClicks(ctx context.Context, from, to time.Time, button string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM click_events
		WHERE created_at >= ? AND created_at < ? AND (? = '' OR button_name = ?)`,
		from.UnixMilli(), to.UnixMilli(), button, button,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count click events: %w", err)
	}
	return count, nil
}

func (r *ClickRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM click_events WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete old click events: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}
