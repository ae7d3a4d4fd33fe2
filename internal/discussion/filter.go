package discussion

import (
	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

// FilterReviews applies a review filter. Only ReviewFilterVerified narrows
// the list; every other value, including an empty or unknown one, returns all
// reviews. The result is a new slice in the original order.
func FilterReviews(reviews []domain.Review, filter domain.ReviewFilter) []domain.Review {
	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if filter == domain.ReviewFilterVerified && !r.Verified {
			continue
		}
		out = append(out, r)
	}
	return out
}
