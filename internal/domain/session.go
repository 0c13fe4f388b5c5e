package domain

import (
	"context"
	"time"
)

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is one timed, paid unit of rink usage. EndTime is always derived
// from StartTime plus the booked hours; edits change the duration, never the
// original start instant. CreatedAt is the canonical time axis for analytics.
type Session struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Hours       float64       `json:"hours"`
	Quantity    int           `json:"quantity"`
	TotalAmount float64       `json:"totalAmount"`
	StartTime   time.Time     `json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Status      SessionStatus `json:"status"`
	AreaID      string        `json:"areaId"`
	Notified    bool          `json:"notified"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type CreateSessionInput struct {
	Name        string
	Hours       float64
	Quantity    int
	TotalAmount float64
	StartTime   time.Time
	EndTime     time.Time
	AreaID      string
}

type UpdateSessionInput struct {
	Name        string
	Hours       float64
	Quantity    int
	TotalAmount float64
	EndTime     time.Time
}

// SessionRepository is the persistence port for sessions. Reads and writes
// that serve the request surface are area-scoped; the expired/notified pair
// serves the dispatcher and spans all areas. The dispatcher only ever writes
// the notified flag, so it never races the lifecycle writers on a field.
type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) (*Session, error)
	FindByID(ctx context.Context, id, areaID string) (*Session, error)
	Update(ctx context.Context, id, areaID string, input UpdateSessionInput) (*Session, error)
	UpdateStatus(ctx context.Context, id, areaID string, status SessionStatus) error
	Delete(ctx context.Context, id, areaID string) error
	FindActiveByArea(ctx context.Context, areaID string) ([]Session, error)

	FindExpiredUnnotified(ctx context.Context, now time.Time) ([]Session, error)
	MarkNotified(ctx context.Context, id string) error

	SumTotalBetween(ctx context.Context, areaID string, from, to time.Time) (float64, error)
	SumTotalByDay(ctx context.Context, areaID string, from, to time.Time) (map[string]float64, error)
	FindCreatedBetween(ctx context.Context, areaID string, from, to time.Time) ([]Session, error)
}
