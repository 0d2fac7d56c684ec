package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rocketshoes/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByProductID(ctx context.Context, productID int64) (*domain.Stock, error) {
	const q = `
SELECT product_id, amount
FROM stock
WHERE product_id = $1
`
	var s domain.Stock
	if err := r.pool.QueryRow(ctx, q, productID).Scan(&s.ID, &s.Amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("stock repo: get", zap.Int64("product_id", productID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("stock repo: get", zap.Int64("product_id", productID), zap.Int("amount", s.Amount))
	return &s, nil
}

func (r *postgresRepo) Set(ctx context.Context, s domain.Stock) error {
	if s.Amount < 0 {
		return fmt.Errorf("stock repo: negative amount %d for product %d", s.Amount, s.ID)
	}
	const q = `
INSERT INTO stock (product_id, amount, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (product_id) DO UPDATE SET
    amount = EXCLUDED.amount,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, s.ID, s.Amount); err != nil {
		r.logger.Error("stock repo: set", zap.Int64("product_id", s.ID), zap.Error(err))
		return err
	}
	return nil
}
