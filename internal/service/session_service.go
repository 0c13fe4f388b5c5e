package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rinkdesk/backend/internal/domain"
)

// SessionService is the lifecycle controller for rink sessions. Every
// operation is scoped to the caller's area: a session id belonging to
// another area behaves exactly like a missing one.
type SessionService struct {
	repo   domain.SessionRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewSessionService(repo domain.SessionRepository, logger *slog.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		logger: logger.With("component", "session_service"),
		now:    time.Now,
	}
}

type CreateSessionRequest struct {
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"totalAmount"`
}

func (req CreateSessionRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if req.Hours <= 0 {
		return fmt.Errorf("%w: hours must be positive", domain.ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if req.TotalAmount < 0 {
		return fmt.Errorf("%w: totalAmount must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

func (s *SessionService) Create(ctx context.Context, area string, req CreateSessionRequest) (*domain.Session, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	startTime := s.now().UTC()
	session, err := s.repo.Create(ctx, domain.CreateSessionInput{
		Name:        strings.TrimSpace(req.Name),
		Hours:       req.Hours,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		StartTime:   startTime,
		EndTime:     startTime.Add(hoursToDuration(req.Hours)),
		AreaID:      area,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session created",
		"sessionId", session.ID,
		"name", session.Name,
		"area", session.AreaID,
		"endTime", session.EndTime,
	)
	return session, nil
}

// Edit recomputes the end time from the stored start time plus the new hours
// value. Editing changes the booked duration, not the original start instant,
// and never touches status or the notified flag.
func (s *SessionService) Edit(ctx context.Context, id, area string, req CreateSessionRequest) (*domain.Session, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id, area)
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, area, domain.UpdateSessionInput{
		Name:        strings.TrimSpace(req.Name),
		Hours:       req.Hours,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		EndTime:     existing.StartTime.Add(hoursToDuration(req.Hours)),
	})
}

// Complete soft-deletes a session. Completing an already-completed session
// succeeds with no observable change.
func (s *SessionService) Complete(ctx context.Context, id, area string) error {
	return s.repo.UpdateStatus(ctx, id, area, domain.SessionStatusCompleted)
}

// DeletePermanently removes the record entirely, including its analytics
// history. Unrecoverable.
func (s *SessionService) DeletePermanently(ctx context.Context, id, area string) error {
	if err := s.repo.Delete(ctx, id, area); err != nil {
		return err
	}
	s.logger.Info("Session permanently deleted", "sessionId", id, "area", area)
	return nil
}

func (s *SessionService) ListActive(ctx context.Context, area string) ([]domain.Session, error) {
	return s.repo.FindActiveByArea(ctx, area)
}
