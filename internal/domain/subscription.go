package domain

import (
	"context"
	"time"
)

// Subscription is one browser push destination. The endpoint is globally
// unique; subscribing the same endpoint twice is a no-op.
type Subscription struct {
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	AreaID    string    `json:"areaId"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub Subscription) error
	FindByArea(ctx context.Context, areaID string) ([]Subscription, error)
	Delete(ctx context.Context, endpoint string) error
}
