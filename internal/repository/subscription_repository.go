package repository

import (
	"context"
	"database/sql"

	"github.com/rinkdesk/backend/internal/domain"
)

type PostgresSubscriptionRepository struct {
	db *sql.DB
}

func NewPostgresSubscriptionRepository(db *sql.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// Upsert stores a subscription, treating a duplicate endpoint as success.
func (r *PostgresSubscriptionRepository) Upsert(ctx context.Context, sub domain.Subscription) error {
	query := `
		INSERT INTO push_subscriptions (endpoint, p256dh, auth, area_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (endpoint) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, sub.Endpoint, sub.P256dh, sub.Auth, sub.AreaID)
	return err
}

func (r *PostgresSubscriptionRepository) FindByArea(ctx context.Context, areaID string) ([]domain.Subscription, error) {
	query := `SELECT endpoint, p256dh, auth, area_id, created_at FROM push_subscriptions WHERE area_id = $1`
	rows, err := r.db.QueryContext(ctx, query, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(&s.Endpoint, &s.P256dh, &s.Auth, &s.AreaID, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *PostgresSubscriptionRepository) Delete(ctx context.Context, endpoint string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.SubscriptionRepository = (*PostgresSubscriptionRepository)(nil)
