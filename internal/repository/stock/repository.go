package stock

import (
	"context"

	"rocketshoes/internal/domain"
)

type Repository interface {
	GetByProductID(ctx context.Context, productID int64) (*domain.Stock, error)
	Set(ctx context.Context, stock domain.Stock) error
}
