package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Divyeshhhh/steamy-sips/internal/catalog"
	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/internal/repository"
	"github.com/Divyeshhhh/steamy-sips/pkg/pagination"
)

// DefaultShopPageSize is the number of products per shop page.
const DefaultShopPageSize = 4

// ShopPage is one page of catalog results together with the query that
// produced it.
type ShopPage struct {
	Products   pagination.Result[domain.Product] `json:"products"`
	Query      domain.QueryParams                `json:"query"`
	Categories []string                          `json:"categories"`
}

// ShopService serves the catalog browse page.
type ShopService struct {
	products repository.ProductRepository
	cache    repository.CatalogCache
	pageSize int
	logger   *slog.Logger
}

// NewShopService creates a shop service. cache may be nil. A non-positive
// pageSize falls back to DefaultShopPageSize.
func NewShopService(products repository.ProductRepository, cache repository.CatalogCache, pageSize int, logger *slog.Logger) *ShopService {
	if pageSize <= 0 {
		pageSize = DefaultShopPageSize
	}
	return &ShopService{products: products, cache: cache, pageSize: pageSize, logger: logger}
}

// Browse filters, sorts and paginates the catalog.
func (s *ShopService) Browse(ctx context.Context, q domain.QueryParams) (*ShopPage, error) {
	q = q.Normalize()

	all, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	matched := catalog.Run(all, q)
	result := pagination.NewResult(matched, s.pageSize, q.Page)
	q.Page = result.Page

	return &ShopPage{
		Products:   result,
		Query:      q,
		Categories: catalog.Categories(all),
	}, nil
}

// Categories returns the distinct categories present in the catalog.
func (s *ShopService) Categories(ctx context.Context) ([]string, error) {
	all, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(all), nil
}

// InvalidateCatalog drops the cached catalog snapshot.
func (s *ShopService) InvalidateCatalog(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate catalog: %w", err)
	}
	s.logger.InfoContext(ctx, "catalog cache invalidated")
	return nil
}

// catalog reads through the cache. Cache failures are logged and the
// database is used instead.
func (s *ShopService) catalog(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "catalog cache read failed", slog.String("error", err.Error()))
		case ok:
			return products, nil
		}
	}

	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			s.logger.WarnContext(ctx, "catalog cache write failed", slog.String("error", err.Error()))
		}
	}
	return products, nil
}
