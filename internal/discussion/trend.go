package discussion

import (
	"math"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

// ReviewTrend pairs each monthly count with its percentage change from the
// preceding entry, rounded to two decimals. Counts must be in month order;
// months without reviews are absent, so a change spans the gap.
func ReviewTrend(counts []domain.MonthlyReviewCount) []domain.ReviewTrendPoint {
	points := make([]domain.ReviewTrendPoint, 0, len(counts))
	for i, c := range counts {
		point := domain.ReviewTrendPoint{MonthlyReviewCount: c}
		if i > 0 && counts[i-1].Total != 0 {
			prev := float64(counts[i-1].Total)
			change := math.Round((float64(c.Total)-prev)*100/prev*100) / 100
			point.Change = &change
		}
		points = append(points, point)
	}
	return points
}
