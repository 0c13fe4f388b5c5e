package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rinkdesk/backend/internal/domain"
)

const userSelectColumns = `id, username, password_hash, role, area_id, created_at`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.AreaID,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresUserRepository) Upsert(ctx context.Context, input domain.UpsertUserInput) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, role, area_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    role = EXCLUDED.role,
		    area_id = EXCLUDED.area_id
		RETURNING ` + userSelectColumns
	return r.scanUser(r.db.QueryRowContext(ctx, query, input.Username, input.PasswordHash, input.Role, input.AreaID))
}

var _ domain.UserRepository = (*PostgresUserRepository)(nil)
