package service

import (
	"context"
	"encoding/json"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

// ProductService handles business logic for products
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns the catalog document unmodified
func (s *ProductService) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return s.repo.Load(ctx)
}
