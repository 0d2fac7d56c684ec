package product

import (
	"context"

	"rocketshoes/internal/domain"
	productrepo "rocketshoes/internal/repository/product"
	stockrepo "rocketshoes/internal/repository/stock"
)

// Service answers catalog queries: product details and stock levels.
type Service struct {
	repo  productrepo.Repository
	stock stockrepo.Repository
}

func New(repo productrepo.Repository, stock stockrepo.Repository) *Service {
	return &Service{repo: repo, stock: stock}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Stock returns the units available for a product.
func (s *Service) Stock(ctx context.Context, id int64) (*domain.Stock, error) {
	return s.stock.GetByProductID(ctx, id)
}
