package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkdesk/backend/internal/domain"
)

func seedSale(t *testing.T, repo *memSessionRepo, area string, createdAt time.Time, amount float64) {
	t.Helper()
	repo.clock = func() time.Time { return createdAt }
	_, err := repo.Create(context.Background(), domain.CreateSessionInput{
		Name:        "sale",
		Hours:       1,
		Quantity:    1,
		TotalAmount: amount,
		StartTime:   createdAt,
		EndTime:     createdAt.Add(time.Hour),
		AreaID:      area,
	})
	require.NoError(t, err)
}

func TestKPIsSeparateTodayFromMonth(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewAnalyticsService(repo, testLogger())
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seedSale(t, repo, "area1", now.Add(-time.Hour), 100)          // today
	seedSale(t, repo, "area1", now.AddDate(0, 0, -1), 200)        // yesterday, same month
	seedSale(t, repo, "area1", now.AddDate(0, -1, 0), 400)        // last month
	seedSale(t, repo, "area2", now.Add(-30*time.Minute), 999)     // other area

	kpis, err := svc.KPIs(context.Background(), "area1")

	require.NoError(t, err)
	assert.Equal(t, 100.0, kpis.TodaySales)
	assert.Equal(t, 300.0, kpis.MonthSales)
}

func TestKPIsEmptyArea(t *testing.T) {
	svc := NewAnalyticsService(newMemSessionRepo(), testLogger())

	kpis, err := svc.KPIs(context.Background(), "area1")

	require.NoError(t, err)
	assert.Zero(t, kpis.TodaySales)
	assert.Zero(t, kpis.MonthSales)
}

func TestWeeklySalesZeroFillsSevenDays(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewAnalyticsService(repo, testLogger())

	// 2026-03-11 is a Wednesday; its week runs Sunday 03-08 through Saturday 03-14.
	ref := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	seedSale(t, repo, "area1", time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC), 50)   // Sunday
	seedSale(t, repo, "area1", time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC), 75) // Wednesday
	seedSale(t, repo, "area1", time.Date(2026, 3, 11, 20, 0, 0, 0, time.UTC), 25) // Wednesday
	seedSale(t, repo, "area1", time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), 500) // next Sunday, out of range

	sales, err := svc.WeeklySales(context.Background(), "area1", ref)

	require.NoError(t, err)
	require.Len(t, sales, 7)
	assert.Equal(t, DailySales{Name: "Sun", Sales: 50}, sales[0])
	assert.Equal(t, DailySales{Name: "Mon", Sales: 0}, sales[1])
	assert.Equal(t, DailySales{Name: "Wed", Sales: 100}, sales[3])
	assert.Equal(t, DailySales{Name: "Sat", Sales: 0}, sales[6])
}

func TestWeeklySalesOnSundayStartsOwnWeek(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewAnalyticsService(repo, testLogger())

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	seedSale(t, repo, "area1", sunday.Add(10*time.Hour), 40)
	seedSale(t, repo, "area1", sunday.AddDate(0, 0, -1), 60) // previous Saturday

	sales, err := svc.WeeklySales(context.Background(), "area1", sunday)

	require.NoError(t, err)
	require.Len(t, sales, 7)
	assert.Equal(t, 40.0, sales[0].Sales)
	for _, d := range sales[1:] {
		assert.Zero(t, d.Sales)
	}
}

func TestTransactionsDefaultToToday(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewAnalyticsService(repo, testLogger())
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seedSale(t, repo, "area1", now.Add(-time.Hour), 100)
	seedSale(t, repo, "area1", now.AddDate(0, 0, -1), 200)

	sessions, err := svc.Transactions(context.Background(), "area1", nil, nil)

	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 100.0, sessions[0].TotalAmount)
}

func TestTransactionsExplicitRangeInclusive(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewAnalyticsService(repo, testLogger())

	seedSale(t, repo, "area1", time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), 10)
	seedSale(t, repo, "area1", time.Date(2026, 3, 12, 0, 1, 0, 0, time.UTC), 20)
	seedSale(t, repo, "area1", time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC), 30)

	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 6, 0, 0, 0, time.UTC)
	sessions, err := svc.Transactions(context.Background(), "area1", &start, &end)

	require.NoError(t, err)
	require.Len(t, sessions, 2, "range covers whole calendar days at both ends")
}

func TestAnalyticsWindowHelpers(t *testing.T) {
	ref := time.Date(2026, 2, 17, 13, 45, 30, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC), startOfDay(ref))
	assert.Equal(t, time.Date(2026, 2, 17, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), endOfDay(ref))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), startOfMonth(ref))
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), endOfMonth(ref))
	// 2026-02-17 is a Tuesday; the week starts Sunday the 15th.
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), startOfWeek(ref))
}
