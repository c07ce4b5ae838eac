package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RevokedTokenRepository is the durable record of tokens invalidated before
// their natural expiry. The live membership check served to the gate lives
// in the Redis revocation list; this table is the audit trail behind it.
type RevokedTokenRepository interface {
	Insert(ctx context.Context, token string, expiresAt time.Time) error
}

type revokedTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRevokedTokenRepository returns a Postgres-backed implementation.
func NewRevokedTokenRepository(pool *pgxpool.Pool) RevokedTokenRepository {
	return &revokedTokenRepository{pool: pool}
}

func (r *revokedTokenRepository) Insert(ctx context.Context, token string, expiresAt time.Time) error {
	const query = `
        INSERT INTO "user".blacklisted_tokens (token, expires)
        VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, token, expiresAt)
	return err
}
