package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/pkg/httputil"
)

// ReviewReader is implemented by *service.DiscussionService.
type ReviewReader interface {
	Review(ctx context.Context, id int64) (*domain.Review, error)
	ReviewTrend(ctx context.Context) ([]domain.ReviewTrendPoint, error)
}

// ReviewHandler serves single reviews and the monthly review trend.
type ReviewHandler struct {
	reviews ReviewReader
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(reviews ReviewReader, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "review id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	review, err := h.reviews.Review(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, review)
}

// ReviewTrend handles GET /api/v1/reviews/trend. Each month with reviews
// carries its count and the percentage change from the previous one.
func (h *ReviewHandler) ReviewTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.reviews.ReviewTrend(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, trend)
}
