package domain

import (
	"strings"
	"time"
)

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review filter values accepted on the product page.
const (
	ReviewFilterAll      ReviewFilter = "all-reviews"
	ReviewFilterVerified ReviewFilter = "verified-reviews"
)

// ReviewFilter selects which reviews are shown on a product page.
type ReviewFilter string

// Review represents a product review submitted by a client. Verified is set
// when the author is known to have purchased the product.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	ClientID  int64     `json:"client_id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	Verified  bool      `json:"verified"`
}

// Validate returns a map of field name to error message for every broken
// invariant. An empty map means the review is valid.
func (r Review) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Text) == "" {
		errs["text"] = "review text must not be empty"
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		errs["rating"] = "rating must be between 1 and 5"
	}
	return errs
}

// MonthlyReviewCount is the number of reviews created in a calendar month.
// Month is the first instant of the month in UTC.
type MonthlyReviewCount struct {
	Month time.Time `json:"month"`
	Total int       `json:"total_reviews"`
}

// ReviewTrendPoint is a monthly count with the percentage change from the
// previous month that has reviews. Change is nil for the first month and
// when the previous count is zero.
type ReviewTrendPoint struct {
	MonthlyReviewCount
	Change *float64 `json:"percentage_difference"`
}
