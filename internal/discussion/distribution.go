package discussion

import (
	"encoding/json"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

// Distribution is the share of reviews per star rating.
type Distribution struct {
	counts [domain.MaxRating]int
	total  int
}

// RatingDistribution counts reviews per star. Ratings outside 1..5 are
// counted in the total but in no star.
func RatingDistribution(reviews []domain.Review) Distribution {
	var d Distribution
	for _, r := range reviews {
		d.total++
		if r.Rating >= domain.MinRating && r.Rating <= domain.MaxRating {
			d.counts[r.Rating-1]++
		}
	}
	return d
}

// Total returns the number of reviews counted.
func (d Distribution) Total() int {
	return d.total
}

// Count returns the number of reviews with the given star rating.
func (d Distribution) Count(star int) int {
	if star < domain.MinRating || star > domain.MaxRating {
		return 0
	}
	return d.counts[star-1]
}

// Percent returns 100*count/total for the given star, or 0 when there are no
// reviews. Rounding is left to the caller.
func (d Distribution) Percent(star int) float64 {
	if d.total == 0 {
		return 0
	}
	return 100 * float64(d.Count(star)) / float64(d.total)
}

// Descending returns the percentages ordered from 5 stars down to 1, the
// order rating charts display them in.
func (d Distribution) Descending() [domain.MaxRating]float64 {
	var out [domain.MaxRating]float64
	for i := range out {
		out[i] = d.Percent(domain.MaxRating - i)
	}
	return out
}

// MarshalJSON encodes the distribution as the Descending array.
func (d Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Descending())
}
