package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Divyeshhhh/steamy-sips/internal/discussion"
	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/internal/repository"
	apperrors "github.com/Divyeshhhh/steamy-sips/pkg/errors"
	"github.com/Divyeshhhh/steamy-sips/pkg/pagination"
)

// DefaultReviewPageSize is the number of reviews per product page.
const DefaultReviewPageSize = 2

// publishTimeout bounds the integrity warning publish on the request path.
const publishTimeout = 2 * time.Second

// PurchaseLookup reports which clients bought a product.
type PurchaseLookup interface {
	Purchasers(ctx context.Context, productID int64) (map[int64]bool, error)
}

// WarningPublisher forwards comment integrity warnings downstream.
type WarningPublisher interface {
	PublishIntegrityWarnings(ctx context.Context, productID int64, warnings []discussion.IntegrityWarning) error
}

// ReviewQuery selects which reviews of a product page are shown.
type ReviewQuery struct {
	Filter domain.ReviewFilter
	Page   int
}

// ReviewThread is a review with its comment forest.
type ReviewThread struct {
	domain.Review
	Comments []*domain.CommentNode `json:"comments"`
}

// ProductPage is everything the product detail page renders.
type ProductPage struct {
	Product      *domain.Product                 `json:"product"`
	ReviewCount  int                             `json:"review_count"`
	Distribution discussion.Distribution         `json:"rating_distribution"`
	Filter       domain.ReviewFilter             `json:"filter"`
	Reviews      pagination.Result[ReviewThread] `json:"reviews"`
}

// DiscussionMetrics counts comment integrity warnings by reason. A nil
// *DiscussionMetrics records nothing.
type DiscussionMetrics struct {
	warnings *prometheus.CounterVec
}

// NewDiscussionMetrics creates the discussion metrics and registers them
// with reg.
func NewDiscussionMetrics(reg prometheus.Registerer) *DiscussionMetrics {
	m := &DiscussionMetrics{
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "discussion_comment_integrity_warnings_total",
			Help: "Comments left out of a review thread, by reason",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.warnings)
	return m
}

func (m *DiscussionMetrics) record(w discussion.IntegrityWarning) {
	if m != nil {
		m.warnings.WithLabelValues(string(w.Reason)).Inc()
	}
}

// DiscussionService assembles product pages: reviews, verification,
// rating distribution and threaded comments.
type DiscussionService struct {
	products  repository.ProductRepository
	reviews   repository.ReviewRepository
	comments  repository.CommentRepository
	purchases PurchaseLookup
	warnings  WarningPublisher
	metrics   *DiscussionMetrics
	pageSize  int
	logger    *slog.Logger
}

// DiscussionDeps groups the collaborators of a DiscussionService. Purchases,
// Warnings and Metrics are optional.
type DiscussionDeps struct {
	Products  repository.ProductRepository
	Reviews   repository.ReviewRepository
	Comments  repository.CommentRepository
	Purchases PurchaseLookup
	Warnings  WarningPublisher
	Metrics   *DiscussionMetrics
}

// NewDiscussionService creates a discussion service. A non-positive pageSize
// falls back to DefaultReviewPageSize.
func NewDiscussionService(deps DiscussionDeps, pageSize int, logger *slog.Logger) *DiscussionService {
	if pageSize <= 0 {
		pageSize = DefaultReviewPageSize
	}
	return &DiscussionService{
		products:  deps.Products,
		reviews:   deps.Reviews,
		comments:  deps.Comments,
		purchases: deps.Purchases,
		warnings:  deps.Warnings,
		metrics:   deps.Metrics,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// ProductPage loads the product and one page of its reviews. The rating
// distribution always covers every review regardless of the filter.
func (s *DiscussionService) ProductPage(ctx context.Context, productID int64, q ReviewQuery) (*ProductPage, error) {
	product, err := lookupProduct(ctx, s.products, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of product %d: %w", productID, err)
	}
	s.markVerified(ctx, productID, reviews)

	shown := discussion.FilterReviews(reviews, q.Filter)
	page := pagination.Paginate(len(shown), s.pageSize, q.Page)
	visible := pagination.Slice(shown, page)

	threads, err := s.threads(ctx, productID, visible)
	if err != nil {
		return nil, err
	}

	filter := q.Filter
	if filter != domain.ReviewFilterVerified {
		filter = domain.ReviewFilterAll
	}

	return &ProductPage{
		Product:      product,
		ReviewCount:  len(reviews),
		Distribution: discussion.RatingDistribution(reviews),
		Filter:       filter,
		Reviews:      pagination.ResultOf(threads, page),
	}, nil
}

// Review returns a single review with its verified flag resolved.
func (s *DiscussionService) Review(ctx context.Context, id int64) (*domain.Review, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("review id must be positive")
	}

	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}

	one := []domain.Review{*rv}
	s.markVerified(ctx, rv.ProductID, one)
	return &one[0], nil
}

// ReviewTrend returns monthly review counts across the catalog with the
// change from the previous month.
func (s *DiscussionService) ReviewTrend(ctx context.Context) ([]domain.ReviewTrendPoint, error) {
	counts, err := s.reviews.CountByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reviews by month: %w", err)
	}
	return discussion.ReviewTrend(counts), nil
}

// markVerified flags reviews whose author bought the product. When the
// order service cannot be reached every review stays unverified.
func (s *DiscussionService) markVerified(ctx context.Context, productID int64, reviews []domain.Review) {
	if s.purchases == nil || len(reviews) == 0 {
		return
	}

	buyers, err := s.purchases.Purchasers(ctx, productID)
	if err != nil {
		s.logger.WarnContext(ctx, "purchase lookup failed, reviews shown unverified",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
		return
	}
	for i := range reviews {
		reviews[i].Verified = buyers[reviews[i].ClientID]
	}
}

func (s *DiscussionService) threads(ctx context.Context, productID int64, reviews []domain.Review) ([]ReviewThread, error) {
	threads := make([]ReviewThread, 0, len(reviews))
	if len(reviews) == 0 {
		return threads, nil
	}

	ids := make([]int64, len(reviews))
	for i, r := range reviews {
		ids[i] = r.ID
	}
	comments, err := s.comments.ListByReviews(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list comments of product %d: %w", productID, err)
	}

	var warnings []discussion.IntegrityWarning
	for _, r := range reviews {
		forest := discussion.BuildTree(comments, r.ID)
		threads = append(threads, ReviewThread{Review: r, Comments: forest.Roots})
		warnings = append(warnings, forest.Warnings...)
	}
	s.reportWarnings(ctx, productID, warnings)

	return threads, nil
}

func (s *DiscussionService) reportWarnings(ctx context.Context, productID int64, warnings []discussion.IntegrityWarning) {
	if len(warnings) == 0 {
		return
	}

	for _, w := range warnings {
		s.metrics.record(w)
		s.logger.WarnContext(ctx, "comment excluded from thread",
			slog.Int64("product_id", productID),
			slog.Int64("review_id", w.ReviewID),
			slog.Int64("comment_id", w.CommentID),
			slog.String("parent_comment_id", w.Parent.String()),
			slog.String("reason", string(w.Reason)),
		)
	}

	if s.warnings == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.warnings.PublishIntegrityWarnings(pubCtx, productID, warnings); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish integrity warnings",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}
