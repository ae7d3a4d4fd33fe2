package catalog

import (
	"slices"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

// Run filters products by keyword and category and stable-sorts what remains
// by params.Sort. The input slice is not modified. Pagination is left to the
// caller.
func Run(products []domain.Product, params domain.QueryParams) []domain.Product {
	result := Filter(products, params)
	Sort(result, params.Sort)
	return result
}

// Filter returns the products matching both the keyword and the category
// selection, in their original order.
func Filter(products []domain.Product, params domain.QueryParams) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !MatchKeyword(p.Name, params.Keyword) {
			continue
		}
		if !MatchCategory(p.Category, params.Categories) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Sort stable-sorts products in place for the given option.
func Sort(products []domain.Product, opt domain.SortOption) {
	if opt == domain.SortNone || !opt.IsValid() {
		return
	}
	slices.SortStableFunc(products, Comparator(opt))
}

// Categories returns the distinct categories present in products, in order of
// first appearance.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
