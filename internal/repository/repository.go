// Package repository declares the storage contracts the storefront services
// depend on.
package repository

import (
	"context"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

// ProductRepository reads the product catalog.
type ProductRepository interface {
	// ListAll returns every product with its average rating, ordered by id.
	ListAll(ctx context.Context) ([]domain.Product, error)

	// GetByID returns apperrors.ErrNotFound when no product has the id.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ReviewRepository reads product reviews.
type ReviewRepository interface {
	// ListByProduct returns the product's reviews, newest first.
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)

	// GetByID returns apperrors.ErrNotFound when no review has the id.
	GetByID(ctx context.Context, id int64) (*domain.Review, error)

	// CountByMonth returns review counts per calendar month (UTC) across
	// all products, oldest first. Months without reviews are omitted.
	CountByMonth(ctx context.Context) ([]domain.MonthlyReviewCount, error)
}

// CommentRepository reads review comments.
type CommentRepository interface {
	// ListByReviews returns the comments of every listed review ordered by
	// creation time ascending.
	ListByReviews(ctx context.Context, reviewIDs []int64) ([]domain.Comment, error)
}

// CatalogCache holds a snapshot of the full catalog.
type CatalogCache interface {
	// Get reports false on a cache miss.
	Get(ctx context.Context) ([]domain.Product, bool, error)
	Set(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}
