package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Divyeshhhh/steamy-sips/internal/discussion"
	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	apperrors "github.com/Divyeshhhh/steamy-sips/pkg/errors"
)

var t0 = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

// Newest first, as the repository returns them.
func reviewFixture() []domain.Review {
	return []domain.Review{
		{ID: 14, ProductID: 7, ClientID: 104, Text: "Perfect", Rating: 5, CreatedAt: t0.Add(4 * time.Hour)},
		{ID: 13, ProductID: 7, ClientID: 103, Text: "Good", Rating: 4, CreatedAt: t0.Add(3 * time.Hour)},
		{ID: 12, ProductID: 7, ClientID: 102, Text: "Great", Rating: 5, CreatedAt: t0.Add(2 * time.Hour)},
		{ID: 11, ProductID: 7, ClientID: 101, Text: "Meh", Rating: 1, CreatedAt: t0.Add(time.Hour)},
	}
}

func newComment(id, review int64, parent domain.ParentRef) domain.Comment {
	return domain.Comment{ID: id, ReviewID: review, Parent: parent, Text: "c", CreatedAt: t0.Add(time.Duration(id) * time.Minute)}
}

type fixture struct {
	products  *mockProductRepository
	reviews   *mockReviewRepository
	comments  *mockCommentRepository
	purchases *mockPurchaseLookup
	warnings  *mockWarningPublisher
	registry  *prometheus.Registry
	svc       *DiscussionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		products:  new(mockProductRepository),
		reviews:   new(mockReviewRepository),
		comments:  new(mockCommentRepository),
		purchases: new(mockPurchaseLookup),
		warnings:  new(mockWarningPublisher),
		registry:  prometheus.NewRegistry(),
	}
	f.svc = NewDiscussionService(DiscussionDeps{
		Products:  f.products,
		Reviews:   f.reviews,
		Comments:  f.comments,
		Purchases: f.purchases,
		Warnings:  f.warnings,
		Metrics:   NewDiscussionMetrics(f.registry),
	}, 0, discard)

	f.products.On("GetByID", mock.Anything, int64(7)).Return(&domain.Product{ID: 7, Name: "Latte"}, nil).Maybe()
	return f
}

func threadIDs(threads []ReviewThread) []int64 {
	ids := make([]int64, len(threads))
	for i, th := range threads {
		ids[i] = th.ID
	}
	return ids
}

func TestDiscussionService_ProductPage(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("ListByProduct", mock.Anything, int64(7)).Return(reviewFixture(), nil)
	f.purchases.On("Purchasers", mock.Anything, int64(7)).Return(map[int64]bool{104: true, 102: true}, nil)
	f.comments.On("ListByReviews", mock.Anything, []int64{14, 13}).Return([]domain.Comment{
		newComment(1, 14, domain.NoParent()),
		newComment(2, 14, domain.ParentOf(1)),
		newComment(3, 13, domain.NoParent()),
	}, nil)

	page, err := f.svc.ProductPage(context.Background(), 7, ReviewQuery{})
	require.NoError(t, err)

	assert.Equal(t, "Latte", page.Product.Name)
	assert.Equal(t, 4, page.ReviewCount)
	assert.Equal(t, domain.ReviewFilterAll, page.Filter)
	assert.Equal(t, [5]float64{50, 25, 0, 0, 25}, page.Distribution.Descending())

	assert.Equal(t, []int64{14, 13}, threadIDs(page.Reviews.Data))
	assert.Equal(t, 2, page.Reviews.TotalPages)
	assert.True(t, page.Reviews.Data[0].Verified)
	assert.False(t, page.Reviews.Data[1].Verified)

	require.Len(t, page.Reviews.Data[0].Comments, 1)
	assert.Equal(t, int64(2), page.Reviews.Data[0].Comments[0].Children[0].ID)
	require.Len(t, page.Reviews.Data[1].Comments, 1)

	f.warnings.AssertNotCalled(t, "PublishIntegrityWarnings", mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscussionService_ProductPage_VerifiedFilter(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("ListByProduct", mock.Anything, int64(7)).Return(reviewFixture(), nil)
	f.purchases.On("Purchasers", mock.Anything, int64(7)).Return(map[int64]bool{104: true, 102: true, 101: true}, nil)
	f.comments.On("ListByReviews", mock.Anything, []int64{11}).Return([]domain.Comment{}, nil)

	page, err := f.svc.ProductPage(context.Background(), 7, ReviewQuery{Filter: domain.ReviewFilterVerified, Page: 2})
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewFilterVerified, page.Filter)
	assert.Equal(t, 3, page.Reviews.TotalCount)
	assert.Equal(t, 2, page.Reviews.Page)
	assert.Equal(t, []int64{11}, threadIDs(page.Reviews.Data))
	assert.NotNil(t, page.Reviews.Data[0].Comments)
	// Distribution ignores the filter.
	assert.Equal(t, 4, page.Distribution.Total())
}

func TestDiscussionService_ProductPage_PurchaseLookupFails(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("ListByProduct", mock.Anything, int64(7)).Return(reviewFixture(), nil)
	f.purchases.On("Purchasers", mock.Anything, int64(7)).Return(nil, errors.New("circuit breaker is open"))

	page, err := f.svc.ProductPage(context.Background(), 7, ReviewQuery{Filter: domain.ReviewFilterVerified})
	require.NoError(t, err)

	assert.Empty(t, page.Reviews.Data)
	assert.Equal(t, 1, page.Reviews.TotalPages)
	f.comments.AssertNotCalled(t, "ListByReviews", mock.Anything, mock.Anything)
}

func TestDiscussionService_ProductPage_NoReviews(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("ListByProduct", mock.Anything, int64(7)).Return([]domain.Review{}, nil)

	page, err := f.svc.ProductPage(context.Background(), 7, ReviewQuery{Page: 3})
	require.NoError(t, err)

	assert.Equal(t, [5]float64{}, page.Distribution.Descending())
	assert.Equal(t, 1, page.Reviews.Page)
	assert.NotNil(t, page.Reviews.Data)
	f.purchases.AssertNotCalled(t, "Purchasers", mock.Anything, mock.Anything)
}

func TestDiscussionService_ProductPage_ReportsIntegrityWarnings(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("ListByProduct", mock.Anything, int64(7)).Return(reviewFixture()[:1], nil)
	f.purchases.On("Purchasers", mock.Anything, int64(7)).Return(map[int64]bool{}, nil)
	f.comments.On("ListByReviews", mock.Anything, []int64{14}).Return([]domain.Comment{
		newComment(1, 14, domain.NoParent()),
		newComment(2, 14, domain.ParentOf(3)),
		newComment(3, 14, domain.ParentOf(2)),
		newComment(4, 14, domain.ParentOf(3)),
	}, nil)
	f.warnings.On("PublishIntegrityWarnings", mock.Anything, int64(7), mock.MatchedBy(func(ws []discussion.IntegrityWarning) bool {
		return len(ws) == 3
	})).Return(errors.New("broker down"))

	page, err := f.svc.ProductPage(context.Background(), 7, ReviewQuery{})
	require.NoError(t, err)

	require.Len(t, page.Reviews.Data[0].Comments, 1)
	f.warnings.AssertExpectations(t)

	families, err := f.registry.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), counts[string(discussion.ReasonCycle)])
	assert.Equal(t, float64(1), counts[string(discussion.ReasonUnderCycle)])
}

func TestDiscussionService_ProductPage_ProductMissing(t *testing.T) {
	f := newFixture(t)
	f.products.On("GetByID", mock.Anything, int64(8)).Return(nil, apperrors.ErrNotFound)

	_, err := f.svc.ProductPage(context.Background(), 8, ReviewQuery{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	f.reviews.AssertNotCalled(t, "ListByProduct", mock.Anything, mock.Anything)
}

func TestDiscussionService_ProductPage_CommentError(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("ListByProduct", mock.Anything, int64(7)).Return(reviewFixture(), nil)
	f.purchases.On("Purchasers", mock.Anything, int64(7)).Return(map[int64]bool{}, nil)
	f.comments.On("ListByReviews", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.svc.ProductPage(context.Background(), 7, ReviewQuery{})
	assert.ErrorContains(t, err, "list comments of product 7")
}

func TestDiscussionService_Review(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("GetByID", mock.Anything, int64(12)).Return(&reviewFixture()[2], nil)
	f.purchases.On("Purchasers", mock.Anything, int64(7)).Return(map[int64]bool{102: true}, nil)

	rv, err := f.svc.Review(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Great", rv.Text)
	assert.True(t, rv.Verified)
}

func TestDiscussionService_Review_PurchaseLookupFails(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("GetByID", mock.Anything, int64(12)).Return(&reviewFixture()[2], nil)
	f.purchases.On("Purchasers", mock.Anything, int64(7)).Return(nil, errors.New("breaker open"))

	rv, err := f.svc.Review(context.Background(), 12)
	require.NoError(t, err)
	assert.False(t, rv.Verified)
}

func TestDiscussionService_Review_Errors(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)
	f.reviews.On("GetByID", mock.Anything, int64(98)).Return(nil, errors.New("timeout"))

	_, err := f.svc.Review(context.Background(), 99)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))

	_, err = f.svc.Review(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.svc.Review(context.Background(), 98)
	assert.ErrorContains(t, err, "get review 98")
}

func TestDiscussionService_ReviewTrend(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("CountByMonth", mock.Anything).Return([]domain.MonthlyReviewCount{
		{Month: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Total: 2},
		{Month: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Total: 5},
	}, nil)

	points, err := f.svc.ReviewTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Nil(t, points[0].Change)
	assert.Equal(t, 150.0, *points[1].Change)
}

func TestDiscussionService_ReviewTrend_Error(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("CountByMonth", mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.svc.ReviewTrend(context.Background())
	assert.ErrorContains(t, err, "count reviews by month")
}
