package domain

import (
	"time"
)

// Product category constants. The storefront sells a fixed set of categories.
const (
	CategoryCoffee   = "Coffee"
	CategoryTea      = "Tea"
	CategoryJuice    = "Juice"
	CategoryPastry   = "Pastry"
	CategorySandwich = "Sandwich"
)

// Product represents a product in the catalog. AverageRating is derived from
// the product's reviews by the persistence layer and is 0 when unrated.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         int64     `json:"price"`
	Calories      int       `json:"calories"`
	ImageURL      string    `json:"image_url"`
	ImageAltText  string    `json:"image_alt_text"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
}

// ValidCategories returns the set of valid product categories.
func ValidCategories() []string {
	return []string{CategoryCoffee, CategoryTea, CategoryJuice, CategoryPastry, CategorySandwich}
}

// IsValidCategory checks whether the given string is a known product category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}
