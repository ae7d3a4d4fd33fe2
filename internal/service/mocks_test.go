package service

import (
	"context"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/Divyeshhhh/steamy-sips/internal/discussion"
	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

var discard = slog.New(slog.DiscardHandler)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) CountByMonth(ctx context.Context) ([]domain.MonthlyReviewCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyReviewCount), args.Error(1)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) ListByReviews(ctx context.Context, reviewIDs []int64) ([]domain.Comment, error) {
	args := m.Called(ctx, reviewIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

type mockCatalogCache struct {
	mock.Mock
}

func (m *mockCatalogCache) Get(ctx context.Context) ([]domain.Product, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Bool(1), args.Error(2)
}

func (m *mockCatalogCache) Set(ctx context.Context, products []domain.Product) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockCatalogCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockPurchaseLookup struct {
	mock.Mock
}

func (m *mockPurchaseLookup) Purchasers(ctx context.Context, productID int64) (map[int64]bool, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type mockWarningPublisher struct {
	mock.Mock
}

func (m *mockWarningPublisher) PublishIntegrityWarnings(ctx context.Context, productID int64, warnings []discussion.IntegrityWarning) error {
	return m.Called(ctx, productID, warnings).Error(0)
}
