package http

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
	"github.com/Divyeshhhh/steamy-sips/internal/service"
	"github.com/Divyeshhhh/steamy-sips/pkg/httputil"
	"github.com/Divyeshhhh/steamy-sips/pkg/pagination"
	"github.com/Divyeshhhh/steamy-sips/pkg/validator"
)

// ShopBrowser is implemented by *service.ShopService.
type ShopBrowser interface {
	Browse(ctx context.Context, q domain.QueryParams) (*service.ShopPage, error)
	Categories(ctx context.Context) ([]string, error)
}

// ShopHandler handles HTTP requests for the shop listing.
type ShopHandler struct {
	service ShopBrowser
	logger  *slog.Logger
}

// NewShopHandler creates a new shop HTTP handler.
func NewShopHandler(svc ShopBrowser, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{service: svc, logger: logger}
}

// shopQuery is the validated form of the listing query string. Unknown
// categories and sort values are accepted; they simply match nothing or
// leave the order unchanged. The query tags name the fields in validation
// errors.
type shopQuery struct {
	Keyword    string   `query:"keyword" validate:"max=100"`
	Categories []string `query:"category" validate:"max=10,dive,max=50"`
	Sort       string   `query:"sort" validate:"max=20"`
}

// ListProducts handles GET /api/v1/shop/products
//
//	?keyword=latte&category=Coffee&category=Tea&sort=priceAsc&page=2
//
// Categories may also be sent as categories[]=Coffee, the form-array
// spelling older storefront pages use.
func (h *ShopHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := shopQuery{
		Keyword:    values.Get("keyword"),
		Categories: slices.Concat(values["category"], values["categories[]"]),
		Sort:       values.Get("sort"),
	}
	if err := validator.Validate(q); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	page, err := h.service.Browse(r.Context(), domain.QueryParams{
		Keyword:    q.Keyword,
		Categories: q.Categories,
		Sort:       domain.ParseSortOption(q.Sort),
		Page:       pagination.FromRequest(r, service.DefaultShopPageSize).Page,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, page)
}

// ListCategories handles GET /api/v1/shop/categories
func (h *ShopHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, cats)
}
