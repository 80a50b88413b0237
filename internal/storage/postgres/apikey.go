package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteemart/storefront/internal/domain/auth"
)

var _ auth.Repository = (*APIKeyRepository)(nil)

// APIKeyRepository provides API key lookups backed by PostgreSQL.
type APIKeyRepository struct {
	pool *pgxpool.Pool
}

// NewAPIKeyRepository returns an APIKeyRepository that uses the given pool.
func NewAPIKeyRepository(pool *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{pool: pool}
}

// Upsert inserts or refreshes an API key row. Used by the seed tool.
func (r *APIKeyRepository) Upsert(ctx context.Context, info auth.APIKeyInfo) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO api_keys (id, key_hash, name, active)
		 VALUES ($1, $2, $3, true)
		 ON CONFLICT (key_hash) DO UPDATE
		 SET name = EXCLUDED.name, active = true`,
		info.ID, info.KeyHash, info.Name)
	if err != nil {
		return fmt.Errorf("upserting api key %q: %w", info.ID, err)
	}
	return nil
}

// FindByHash looks up an active API key by its HMAC-SHA256 hash.
func (r *APIKeyRepository) FindByHash(ctx context.Context, hash string) (*auth.APIKeyInfo, error) {
	var info auth.APIKeyInfo
	err := r.pool.QueryRow(ctx,
		`SELECT id, key_hash, name FROM api_keys WHERE key_hash = $1 AND active`, hash).
		Scan(&info.ID, &info.KeyHash, &info.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("api key not found: %w", err)
		}
		return nil, fmt.Errorf("finding api key by hash: %w", err)
	}
	return &info, nil
}
