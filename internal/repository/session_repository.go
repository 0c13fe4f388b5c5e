package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rinkdesk/backend/internal/domain"
)

const sessionSelectColumns = `id, name, hours, quantity, total_amount, start_time, end_time, status, area_id, notified, created_at`

type PostgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Hours,
		&s.Quantity,
		&s.TotalAmount,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.AreaID,
		&s.Notified,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSessionRepository) scanSessionRows(rows *sql.Rows) ([]domain.Session, error) {
	defer rows.Close()
	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Hours,
			&s.Quantity,
			&s.TotalAmount,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.AreaID,
			&s.Notified,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *PostgresSessionRepository) Create(ctx context.Context, input domain.CreateSessionInput) (*domain.Session, error) {
	query := `
		INSERT INTO sessions (name, hours, quantity, total_amount, start_time, end_time, status, area_id, notified)
		VALUES ($1, $2, $3, $4, $5, $6, 'active', $7, FALSE)
		RETURNING ` + sessionSelectColumns
	return r.scanSession(r.db.QueryRowContext(ctx, query,
		input.Name,
		input.Hours,
		input.Quantity,
		input.TotalAmount,
		input.StartTime,
		input.EndTime,
		input.AreaID,
	))
}

func (r *PostgresSessionRepository) FindByID(ctx context.Context, id, areaID string) (*domain.Session, error) {
	query := `SELECT ` + sessionSelectColumns + ` FROM sessions WHERE id = $1 AND area_id = $2`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id, areaID))
}

func (r *PostgresSessionRepository) Update(ctx context.Context, id, areaID string, input domain.UpdateSessionInput) (*domain.Session, error) {
	query := `
		UPDATE sessions
		SET name = $3, hours = $4, quantity = $5, total_amount = $6, end_time = $7
		WHERE id = $1 AND area_id = $2
		RETURNING ` + sessionSelectColumns
	return r.scanSession(r.db.QueryRowContext(ctx, query,
		id,
		areaID,
		input.Name,
		input.Hours,
		input.Quantity,
		input.TotalAmount,
		input.EndTime,
	))
}

func (r *PostgresSessionRepository) UpdateStatus(ctx context.Context, id, areaID string, status domain.SessionStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET status = $3 WHERE id = $1 AND area_id = $2`,
		id, areaID, status,
	)
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

func (r *PostgresSessionRepository) Delete(ctx context.Context, id, areaID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1 AND area_id = $2`, id, areaID)
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

func (r *PostgresSessionRepository) FindActiveByArea(ctx context.Context, areaID string) ([]domain.Session, error) {
	query := `SELECT ` + sessionSelectColumns + ` FROM sessions WHERE status = 'active' AND area_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, areaID)
	if err != nil {
		return nil, err
	}
	return r.scanSessionRows(rows)
}

func (r *PostgresSessionRepository) FindExpiredUnnotified(ctx context.Context, now time.Time) ([]domain.Session, error) {
	query := `SELECT ` + sessionSelectColumns + ` FROM sessions WHERE status = 'active' AND end_time <= $1 AND notified = FALSE`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	return r.scanSessionRows(rows)
}

func (r *PostgresSessionRepository) MarkNotified(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE sessions SET notified = TRUE WHERE id = $1`, id)
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

func (r *PostgresSessionRepository) SumTotalBetween(ctx context.Context, areaID string, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sessions
		WHERE area_id = $1 AND created_at >= $2 AND created_at <= $3
	`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, areaID, from, to).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresSessionRepository) SumTotalByDay(ctx context.Context, areaID string, from, to time.Time) (map[string]float64, error) {
	query := `
		SELECT (created_at AT TIME ZONE 'UTC')::date AS day, COALESCE(SUM(total_amount), 0)
		FROM sessions
		WHERE area_id = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY day
	`
	rows, err := r.db.QueryContext(ctx, query, areaID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var day time.Time
		var total float64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		totals[day.Format("2006-01-02")] = total
	}
	return totals, rows.Err()
}

func (r *PostgresSessionRepository) FindCreatedBetween(ctx context.Context, areaID string, from, to time.Time) ([]domain.Session, error) {
	query := `SELECT ` + sessionSelectColumns + ` FROM sessions WHERE area_id = $1 AND created_at >= $2 AND created_at <= $3 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, areaID, from, to)
	if err != nil {
		return nil, err
	}
	return r.scanSessionRows(rows)
}

var _ domain.SessionRepository = (*PostgresSessionRepository)(nil)
