package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rinkdesk/backend/internal/domain"
)

// AnalyticsService answers sales reporting queries. All windows key off the
// store-assigned creation time, so editing a session's duration never moves a
// sale between reporting periods. Bounds are inclusive at both ends.
type AnalyticsService struct {
	repo   domain.SessionRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewAnalyticsService(repo domain.SessionRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		logger: logger.With("component", "analytics_service"),
		now:    time.Now,
	}
}

type KPIs struct {
	TodaySales float64 `json:"todaySales"`
	MonthSales float64 `json:"monthSales"`
}

type DailySales struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

func (s *AnalyticsService) KPIs(ctx context.Context, area string) (*KPIs, error) {
	now := s.now().UTC()

	today, err := s.repo.SumTotalBetween(ctx, area, startOfDay(now), endOfDay(now))
	if err != nil {
		return nil, err
	}

	month, err := s.repo.SumTotalBetween(ctx, area, startOfMonth(now), endOfMonth(now))
	if err != nil {
		return nil, err
	}

	return &KPIs{TodaySales: today, MonthSales: month}, nil
}

// WeeklySales returns exactly seven entries for the Sunday-start week
// containing ref, one per calendar day in order, zero-filled for days
// without sales.
func (s *AnalyticsService) WeeklySales(ctx context.Context, area string, ref time.Time) ([]DailySales, error) {
	weekStart := startOfWeek(ref.UTC())
	weekEnd := endOfDay(weekStart.AddDate(0, 0, 6))

	totals, err := s.repo.SumTotalByDay(ctx, area, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	sales := make([]DailySales, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		sales = append(sales, DailySales{
			Name:  day.Format("Mon"),
			Sales: totals[day.Format("2006-01-02")],
		})
	}
	return sales, nil
}

// Transactions lists sessions created inside the given date range, newest
// first. With no range it reports today.
func (s *AnalyticsService) Transactions(ctx context.Context, area string, start, end *time.Time) ([]domain.Session, error) {
	now := s.now().UTC()
	from, to := startOfDay(now), endOfDay(now)
	if start != nil && end != nil {
		from, to = startOfDay(start.UTC()), endOfDay(end.UTC())
	}
	return s.repo.FindCreatedBetween(ctx, area, from, to)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return endOfDay(startOfMonth(t).AddDate(0, 1, -1))
}

// startOfWeek returns midnight of the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t.AddDate(0, 0, -int(t.Weekday())))
}
