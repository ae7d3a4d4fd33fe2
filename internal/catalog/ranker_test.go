package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

func TestCompare(t *testing.T) {
	older := domain.Product{ID: 1, Price: 300, AverageRating: 4.5, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := domain.Product{ID: 2, Price: 450, AverageRating: 3.0, CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		opt  domain.SortOption
		sign int
	}{
		{domain.SortNone, 0},
		{domain.SortOption("bogus"), 0},
		{domain.SortNewest, 1},
		{domain.SortPriceAsc, -1},
		{domain.SortPriceDesc, 1},
		{domain.SortRatingAsc, 1},
		{domain.SortRatingDesc, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.opt), func(t *testing.T) {
			got := Compare(older, newer, tt.opt)
			switch tt.sign {
			case 0:
				assert.Zero(t, got)
			case 1:
				assert.Positive(t, got)
			default:
				assert.Negative(t, got)
			}
		})
	}
}

func TestCompare_TiesAreZero(t *testing.T) {
	at := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	a := domain.Product{ID: 1, Price: 300, AverageRating: 4, CreatedAt: at}
	b := domain.Product{ID: 2, Price: 300, AverageRating: 4, CreatedAt: at}

	for _, opt := range domain.ValidSortOptions() {
		assert.Zero(t, Compare(a, b, opt), string(opt))
		assert.Zero(t, Compare(b, a, opt), string(opt))
	}
}
