package catalog

import (
	"cmp"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

// Compare orders two products for the given sort option. It returns a
// negative number when a sorts before b, a positive number when after, and
// 0 when the option expresses no preference: an empty or unrecognised option,
// or equal values on the active key. Callers must use a stable sort so that
// zero results keep catalog order.
func Compare(a, b domain.Product, opt domain.SortOption) int {
	switch opt {
	case domain.SortNewest:
		return b.CreatedAt.Compare(a.CreatedAt)
	case domain.SortPriceAsc:
		return cmp.Compare(a.Price, b.Price)
	case domain.SortPriceDesc:
		return cmp.Compare(b.Price, a.Price)
	case domain.SortRatingAsc:
		return cmp.Compare(a.AverageRating, b.AverageRating)
	case domain.SortRatingDesc:
		return cmp.Compare(b.AverageRating, a.AverageRating)
	default:
		return 0
	}
}

// Comparator binds Compare to a sort option for use with slices.SortStableFunc.
func Comparator(opt domain.SortOption) func(a, b domain.Product) int {
	return func(a, b domain.Product) int {
		return Compare(a, b, opt)
	}
}
