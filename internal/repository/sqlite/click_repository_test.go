package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"clicktrack/internal/database"
	"clicktrack/internal/domain"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func insertClick(t *testing.T, repo *ClickRepository, button string, createdAt time.Time) {
	t.Helper()

	err := repo.InsertClick(context.Background(), domain.ClickEvent{
		ID:            fmt.Sprintf("%s-%d-%d", button, createdAt.UnixMilli(), time.Now().UnixNano()),
		ButtonName:    button,
		PageURL:       "https://example.com/landing",
		DeviceType:    "Desktop",
		TrafficSource: "Direct",
		CreatedAt:     createdAt,
	})
	require.NoError(t, err)
}

func TestInsertClick_StoresRecord(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	now := time.Now().UTC()
	insertClick(t, repo, "hero_cta", now.Add(-time.Minute))

	count, err := repo.CountClicks(context.Background(), now.AddDate(0, 0, -1), now, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInsertClick_DuplicateEventsAllRecorded(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	now := time.Now().UTC()
	// Same button, same instant: no deduplication.
	insertClick(t, repo, "hero_cta", now.Add(-time.Minute))
	insertClick(t, repo, "hero_cta", now.Add(-time.Minute))

	count, err := repo.CountClicks(context.Background(), now.AddDate(0, 0, -1), now, "hero_cta")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestButtonStats_WindowScenario(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	insertClick(t, repo, "hero_cta", asOf.Add(-1*time.Hour))
	insertClick(t, repo, "hero_cta", asOf.Add(-25*time.Hour))
	insertClick(t, repo, "hero_cta", asOf.AddDate(0, 0, -8))
	insertClick(t, repo, "hero_cta", asOf.AddDate(0, 0, -40))

	stats, err := repo.ButtonStats(context.Background(), asOf, "")
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, domain.ButtonStat{
		ButtonName:  "hero_cta",
		TotalClicks: 4,
		Last24Hours: 1,
		Last7Days:   2,
		Last30Days:  3,
	}, stats[0])
}

func TestButtonStats_WindowBoundaryInclusive(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	// Exactly 24h before asOf: inside the half-open window.
	insertClick(t, repo, "hero_cta", asOf.Add(-24*time.Hour))
	// One millisecond earlier: outside.
	insertClick(t, repo, "hero_cta", asOf.Add(-24*time.Hour-time.Millisecond))

	stats, err := repo.ButtonStats(context.Background(), asOf, "hero_cta")
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, int64(1), stats[0].Last24Hours)
	assert.Equal(t, int64(2), stats[0].Last7Days)
	assert.Equal(t, int64(2), stats[0].TotalClicks)
}

func TestButtonStats_GroupsByButton(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	insertClick(t, repo, "hero_cta", asOf.Add(-time.Hour))
	insertClick(t, repo, "hero_cta", asOf.Add(-2*time.Hour))
	insertClick(t, repo, "footer_contact", asOf.Add(-3*time.Hour))

	stats, err := repo.ButtonStats(context.Background(), asOf, "")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Ordering is not part of the contract.
	sort.Slice(stats, func(i, j int) bool { return stats[i].ButtonName < stats[j].ButtonName })
	assert.Equal(t, "footer_contact", stats[0].ButtonName)
	assert.Equal(t, int64(1), stats[0].TotalClicks)
	assert.Equal(t, "hero_cta", stats[1].ButtonName)
	assert.Equal(t, int64(2), stats[1].TotalClicks)
}

func TestButtonStats_FilterRestrictsToOneButton(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	insertClick(t, repo, "hero_cta", asOf.Add(-time.Hour))
	insertClick(t, repo, "footer_contact", asOf.Add(-time.Hour))

	stats, err := repo.ButtonStats(context.Background(), asOf, "footer_contact")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "footer_contact", stats[0].ButtonName)
}

func TestButtonStats_NoEvents_ReturnsEmpty(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	stats, err := repo.ButtonStats(context.Background(), time.Now().UTC(), "")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestCountsByDay_BucketsByUTCDay(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	insertClick(t, repo, "hero_cta", time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC))
	insertClick(t, repo, "hero_cta", time.Date(2024, 1, 9, 23, 59, 59, 0, time.UTC))
	insertClick(t, repo, "hero_cta", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	from := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	counts, err := repo.CountsByDay(context.Background(), from, to, "")
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"2024-01-09": 2,
		"2024-01-10": 1,
	}, counts)
}

func TestCountsByDay_FilterByButton(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	day := time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)
	insertClick(t, repo, "hero_cta", day)
	insertClick(t, repo, "footer_contact", day)

	from := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	counts, err := repo.CountsByDay(context.Background(), from, to, "hero_cta")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"2024-01-09": 1}, counts)
}

func TestListClicks_NewestFirstWithPaging(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		insertClick(t, repo, "hero_cta", base.Add(time.Duration(i)*time.Minute))
	}

	from := base.AddDate(0, 0, -1)
	to := base.AddDate(0, 0, 1)

	first, err := repo.ListClicks(context.Background(), from, to, "", 2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, base.Add(4*time.Minute), first[0].CreatedAt)
	assert.Equal(t, base.Add(3*time.Minute), first[1].CreatedAt)

	second, err := repo.ListClicks(context.Background(), from, to, "", 2, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, base.Add(2*time.Minute), second[0].CreatedAt)

	third, err := repo.ListClicks(context.Background(), from, to, "", 2, 4)
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, base, third[0].CreatedAt)

	// Offset past the end is empty, not an error.
	empty, err := repo.ListClicks(context.Background(), from, to, "", 2, 6)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListClicks_RoundTripsAllFields(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	createdAt := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	event := domain.ClickEvent{
		ID:            "evt-1",
		ButtonName:    "hero_cta",
		PageURL:       "https://pharmacy.example/landing",
		RedirectURL:   "https://pharmacy.example/register",
		Referrer:      "https://google.com/search",
		UserAgent:     "Mozilla/5.0",
		IPAddress:     "203.0.113.9",
		DeviceType:    "Desktop",
		TrafficSource: "Search",
		CreatedAt:     createdAt,
	}
	require.NoError(t, repo.InsertClick(context.Background(), event))

	events, err := repo.ListClicks(context.Background(), createdAt.Add(-time.Hour), createdAt.Add(time.Hour), "", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event, events[0])
}

func TestDeleteOlderThan_RemovesOnlyOldRows(t *testing.T) {
	repo := NewClickRepository(setupTestDB(t))

	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	insertClick(t, repo, "hero_cta", cutoff.Add(-time.Millisecond))
	insertClick(t, repo, "hero_cta", cutoff) // exactly at cutoff stays
	insertClick(t, repo, "hero_cta", cutoff.Add(time.Hour))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := repo.CountClicks(context.Background(), cutoff.AddDate(0, 0, -30), cutoff.AddDate(0, 0, 1), "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
