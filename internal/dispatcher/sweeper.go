package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rinkdesk/backend/internal/domain"
	"github.com/rinkdesk/backend/internal/push"
)

const notificationTitle = "Skating Session Over"

// Config is the sweeper's construction-time configuration.
type Config struct {
	Interval time.Duration
	LinkURL  string
}

// Sweeper periodically scans for sessions that have run past their end time
// without being notified, and fans out one push per area subscriber.
//
// Delivery guarantees: at most one attempt-wave per session in normal
// operation (the notified flag is set after the wave regardless of individual
// outcomes, and individual failures are never retried). A crash between
// delivering and marking lets the next sweep repeat the wave, so across
// restarts delivery is at-least-once.
type Sweeper struct {
	sessions domain.SessionRepository
	subs     domain.SubscriptionRepository
	sender   push.Sender
	cfg      Config
	logger   *slog.Logger

	sweeping atomic.Bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(
	sessions domain.SessionRepository,
	subs domain.SubscriptionRepository,
	sender push.Sender,
	cfg Config,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		subs:     subs,
		sender:   sender,
		cfg:      cfg,
		logger:   logger.With("component", "dispatcher"),
		stopCh:   make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting notification sweeper", "interval", s.cfg.Interval)

	s.wg.Add(1)
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("Stopping notification sweeper")
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("Notification sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("Sweep failed", "error", err)
			}
		}
	}
}

// Sweep runs one scan. Overlapping invocations are skipped, not queued: if a
// sweep outlives the interval the next tick is a no-op.
func (s *Sweeper) Sweep(ctx context.Context) error {
	if !s.sweeping.CompareAndSwap(false, true) {
		s.logger.Warn("Previous sweep still running, skipping tick")
		return nil
	}
	defer s.sweeping.Store(false)

	expired, err := s.sessions.FindExpiredUnnotified(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("query expired sessions: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	for _, session := range expired {
		s.notifySession(ctx, session)
	}
	return nil
}

// notifySession delivers one attempt-wave for a session and marks it
// notified. A session with no subscribers is still marked, so a subscriber
// arriving later never receives an already-missed alert.
func (s *Sweeper) notifySession(ctx context.Context, session domain.Session) {
	subs, err := s.subs.FindByArea(ctx, session.AreaID)
	if err != nil {
		s.logger.Error("Failed to load subscriptions", "sessionId", session.ID, "area", session.AreaID, "error", err)
		return
	}

	payload := push.NewPayload(
		notificationTitle,
		fmt.Sprintf("Time is up for %s!", session.Name),
		s.cfg.LinkURL,
	)

	delivered := 0
	for _, sub := range subs {
		err := s.sender.Send(ctx, sub, payload)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, domain.ErrSubscriptionGone):
			s.logger.Info("Pruning dead push subscription", "area", sub.AreaID)
			if delErr := s.subs.Delete(ctx, sub.Endpoint); delErr != nil && !errors.Is(delErr, domain.ErrNotFound) {
				s.logger.Error("Failed to delete dead subscription", "error", delErr)
			}
		default:
			s.logger.Error("Failed to deliver push", "sessionId", session.ID, "error", err)
		}
	}

	if err := s.sessions.MarkNotified(ctx, session.ID); err != nil {
		// Left unmarked, the session will be swept again next tick.
		s.logger.Error("Failed to mark session notified", "sessionId", session.ID, "error", err)
		return
	}

	s.logger.Info("Session expiry notified",
		"sessionId", session.ID,
		"name", session.Name,
		"area", session.AreaID,
		"subscribers", len(subs),
		"delivered", delivered,
	)
}
