package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/internal/repository"
	apperrors "github.com/Divyeshhhh/steamy-sips/pkg/errors"
)

// ProductService implements single-product lookups.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// GetProduct returns the product or a 404 AppError.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return lookupProduct(ctx, s.repo, id)
}

func lookupProduct(ctx context.Context, repo repository.ProductRepository, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("product id must be positive")
	}

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}
