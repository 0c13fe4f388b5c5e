package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkdesk/backend/internal/domain"
)

// memSessionRepo is an in-memory stand-in for the Postgres repository,
// mirroring its area-scoping and not-found semantics.
type memSessionRepo struct {
	nextID   int
	sessions map[string]*domain.Session
	clock    func() time.Time
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		sessions: make(map[string]*domain.Session),
		clock:    time.Now,
	}
}

func (r *memSessionRepo) Create(ctx context.Context, input domain.CreateSessionInput) (*domain.Session, error) {
	r.nextID++
	s := &domain.Session{
		ID:          fmt.Sprintf("s%d", r.nextID),
		Name:        input.Name,
		Hours:       input.Hours,
		Quantity:    input.Quantity,
		TotalAmount: input.TotalAmount,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      domain.SessionStatusActive,
		AreaID:      input.AreaID,
		CreatedAt:   r.clock().UTC(),
	}
	r.sessions[s.ID] = s
	copy := *s
	return &copy, nil
}

func (r *memSessionRepo) FindByID(ctx context.Context, id, areaID string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok || s.AreaID != areaID {
		return nil, domain.ErrNotFound
	}
	copy := *s
	return &copy, nil
}

func (r *memSessionRepo) Update(ctx context.Context, id, areaID string, input domain.UpdateSessionInput) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok || s.AreaID != areaID {
		return nil, domain.ErrNotFound
	}
	s.Name = input.Name
	s.Hours = input.Hours
	s.Quantity = input.Quantity
	s.TotalAmount = input.TotalAmount
	s.EndTime = input.EndTime
	copy := *s
	return &copy, nil
}

func (r *memSessionRepo) UpdateStatus(ctx context.Context, id, areaID string, status domain.SessionStatus) error {
	s, ok := r.sessions[id]
	if !ok || s.AreaID != areaID {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id, areaID string) error {
	s, ok := r.sessions[id]
	if !ok || s.AreaID != areaID {
		return domain.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) FindActiveByArea(ctx context.Context, areaID string) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range r.sessions {
		if s.Status == domain.SessionStatusActive && s.AreaID == areaID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memSessionRepo) FindExpiredUnnotified(ctx context.Context, now time.Time) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range r.sessions {
		if s.Status == domain.SessionStatusActive && !s.EndTime.After(now) && !s.Notified {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) MarkNotified(ctx context.Context, id string) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Notified = true
	return nil
}

func (r *memSessionRepo) SumTotalBetween(ctx context.Context, areaID string, from, to time.Time) (float64, error) {
	var total float64
	for _, s := range r.sessions {
		if s.AreaID == areaID && !s.CreatedAt.Before(from) && !s.CreatedAt.After(to) {
			total += s.TotalAmount
		}
	}
	return total, nil
}

func (r *memSessionRepo) SumTotalByDay(ctx context.Context, areaID string, from, to time.Time) (map[string]float64, error) {
	totals := make(map[string]float64)
	for _, s := range r.sessions {
		if s.AreaID == areaID && !s.CreatedAt.Before(from) && !s.CreatedAt.After(to) {
			totals[s.CreatedAt.UTC().Format("2006-01-02")] += s.TotalAmount
		}
	}
	return totals, nil
}

func (r *memSessionRepo) FindCreatedBetween(ctx context.Context, areaID string, from, to time.Time) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range r.sessions {
		if s.AreaID == areaID && !s.CreatedAt.Before(from) && !s.CreatedAt.After(to) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ domain.SessionRepository = (*memSessionRepo)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validCreateRequest() CreateSessionRequest {
	return CreateSessionRequest{
		Name:        "Alice",
		Hours:       1,
		Quantity:    2,
		TotalAmount: 200,
	}
}

func TestCreateSessionComputesEndTime(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, testLogger())
	t0 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	session, err := svc.Create(context.Background(), "area1", validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, t0, session.StartTime)
	assert.Equal(t, t0.Add(time.Hour), session.EndTime)
	assert.Equal(t, domain.SessionStatusActive, session.Status)
	assert.False(t, session.Notified)
	assert.Equal(t, "area1", session.AreaID)
}

func TestCreateSessionFractionalHours(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, testLogger())
	t0 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	req := validCreateRequest()
	req.Hours = 1.5
	session, err := svc.Create(context.Background(), "area1", req)

	require.NoError(t, err)
	assert.Equal(t, t0.Add(90*time.Minute), session.EndTime)
}

func TestCreateSessionValidation(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), testLogger())

	cases := []struct {
		name   string
		mutate func(*CreateSessionRequest)
	}{
		{"empty name", func(r *CreateSessionRequest) { r.Name = "  " }},
		{"zero hours", func(r *CreateSessionRequest) { r.Hours = 0 }},
		{"negative hours", func(r *CreateSessionRequest) { r.Hours = -1 }},
		{"zero quantity", func(r *CreateSessionRequest) { r.Quantity = 0 }},
		{"negative amount", func(r *CreateSessionRequest) { r.TotalAmount = -50 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), "area1", req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEditSessionKeepsOriginalStartTime(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, testLogger())
	t0 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	created, err := svc.Create(context.Background(), "area1", validCreateRequest())
	require.NoError(t, err)

	// The edit happens later; end time must still derive from t0.
	svc.now = func() time.Time { return t0.Add(45 * time.Minute) }

	req := validCreateRequest()
	req.Hours = 3
	edited, err := svc.Edit(context.Background(), created.ID, "area1", req)

	require.NoError(t, err)
	assert.Equal(t, t0, edited.StartTime)
	assert.Equal(t, t0.Add(3*time.Hour), edited.EndTime)
	assert.Equal(t, domain.SessionStatusActive, edited.Status)
	assert.False(t, edited.Notified)
}

func TestEditSessionNotFound(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), testLogger())

	_, err := svc.Edit(context.Background(), "missing", "area1", validCreateRequest())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditSessionCrossAreaBehavesAsMissing(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, testLogger())

	created, err := svc.Create(context.Background(), "area1", validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Edit(context.Background(), created.ID, "area2", validCreateRequest())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteSessionRemovesFromActiveList(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, testLogger())

	created, err := svc.Create(context.Background(), "area1", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Complete(context.Background(), created.ID, "area1"))

	active, err := svc.ListActive(context.Background(), "area1")
	require.NoError(t, err)
	assert.Empty(t, active)

	// Completing again is a no-op success.
	require.NoError(t, svc.Complete(context.Background(), created.ID, "area1"))
}

func TestDeletePermanentlyRemovesRecord(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, testLogger())

	created, err := svc.Create(context.Background(), "area1", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePermanently(context.Background(), created.ID, "area1"))

	_, err = repo.FindByID(context.Background(), created.ID, "area1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeletePermanently(context.Background(), created.ID, "area1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListActiveOrdersNewestFirst(t *testing.T) {
	repo := newMemSessionRepo()
	svc := NewSessionService(repo, testLogger())

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		repo.clock = func() time.Time { return created }
		svc.now = func() time.Time { return created }
		req := validCreateRequest()
		req.Name = fmt.Sprintf("guest-%d", i)
		_, err := svc.Create(context.Background(), "area1", req)
		require.NoError(t, err)
	}

	active, err := svc.ListActive(context.Background(), "area1")

	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "guest-2", active[0].Name)
	assert.Equal(t, "guest-0", active[2].Name)
}
