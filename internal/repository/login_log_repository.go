package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginLogRepository records successful logins for auditing.
type LoginLogRepository interface {
	Insert(ctx context.Context, userID, timeZone string) error
}

type loginLogRepository struct {
	pool *pgxpool.Pool
}

// NewLoginLogRepository returns a Postgres-backed implementation.
func NewLoginLogRepository(pool *pgxpool.Pool) LoginLogRepository {
	return &loginLogRepository{pool: pool}
}

func (r *loginLogRepository) Insert(ctx context.Context, userID, timeZone string) error {
	const query = `
        INSERT INTO log.login (user_id, time_zone)
        VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, userID, timeZone)
	return err
}
