package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/internal/service"
	"github.com/Divyeshhhh/steamy-sips/pkg/httputil"
	"github.com/Divyeshhhh/steamy-sips/pkg/pagination"
)

// ProductGetter is implemented by *service.ProductService.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// ProductPager is implemented by *service.DiscussionService.
type ProductPager interface {
	ProductPage(ctx context.Context, productID int64, q service.ReviewQuery) (*service.ProductPage, error)
}

// ProductHandler handles the product detail endpoints.
type ProductHandler struct {
	products   ProductGetter
	discussion ProductPager
	logger     *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(products ProductGetter, discussion ProductPager, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, discussion: discussion, logger: logger}
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "product id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	p, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, p)
}

// ListReviews handles GET /api/v1/products/{id}/reviews
//
//	?filter=verified-reviews&page=2
//
// filter-review is accepted as an alias of filter. The response carries
// the product, the rating distribution over all of its reviews, and one
// page of filtered reviews with their comment threads.
// Unknown filter values show all reviews.
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "product id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	page, err := h.discussion.ProductPage(r.Context(), id, service.ReviewQuery{
		Filter: reviewFilter(r),
		Page:   pagination.FromRequest(r, service.DefaultReviewPageSize).Page,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, page)
}

func reviewFilter(r *http.Request) domain.ReviewFilter {
	values := r.URL.Query()
	if f := values.Get("filter"); f != "" {
		return domain.ReviewFilter(f)
	}
	return domain.ReviewFilter(values.Get("filter-review"))
}
