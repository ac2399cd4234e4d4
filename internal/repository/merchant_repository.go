package repository

import (
	"context"
	"fmt"

	"plantkart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// merchantRepository implements the MerchantRepository interface using PostgreSQL.
type merchantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMerchantRepository creates a new PostgreSQL-backed merchant repository.
func NewMerchantRepository(pool *pgxpool.Pool, logger zerolog.Logger) MerchantRepository {
	return &merchantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "merchant").Logger(),
	}
}

// GetByCode retrieves a merchant by its code.
func (r *merchantRepository) GetByCode(ctx context.Context, code string) (*model.Merchant, error) {
	query := `
		SELECT id, code, name, email, phone, address, created_at
		FROM merchants
		WHERE code = $1
	`

	var m model.Merchant
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&m.ID, &m.Code, &m.Name, &m.Email, &m.Phone, &m.Address, &m.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("merchant_code", code).Msg("merchant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("merchant_code", code).Msg("failed to query merchant")
		return nil, fmt.Errorf("failed to query merchant: %w", err)
	}

	return &m, nil
}

// GetAll retrieves all merchants with pagination support.
func (r *merchantRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Merchant, error) {
	query := `
		SELECT id, code, name, email, phone, address, created_at
		FROM merchants
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query merchants")
		return nil, fmt.Errorf("failed to query merchants: %w", err)
	}
	defer rows.Close()

	var merchants []model.Merchant
	for rows.Next() {
		var m model.Merchant
		err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Email, &m.Phone, &m.Address, &m.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan merchant row")
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating merchant rows")
		return nil, fmt.Errorf("error iterating merchants: %w", err)
	}

	return merchants, nil
}
