package domain

// SortOption selects the ordering applied to catalog results.
type SortOption string

// Sort options understood by the product ranker. The zero value means no
// reordering.
const (
	SortNone       SortOption = ""
	SortNewest     SortOption = "newest"
	SortPriceAsc   SortOption = "priceAsc"
	SortPriceDesc  SortOption = "priceDesc"
	SortRatingAsc  SortOption = "ratingAsc"
	SortRatingDesc SortOption = "ratingDesc"
)

// ValidSortOptions returns the list of recognised sort options, excluding SortNone.
func ValidSortOptions() []SortOption {
	return []SortOption{SortNewest, SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc}
}

// IsValid reports whether s is SortNone or one of ValidSortOptions.
func (s SortOption) IsValid() bool {
	if s == SortNone {
		return true
	}
	for _, o := range ValidSortOptions() {
		if o == s {
			return true
		}
	}
	return false
}

// QueryParams carries the shop search, filter, sort and page selection.
// An empty Keyword or empty Categories means "no filter".
type QueryParams struct {
	Keyword    string     `json:"keyword"`
	Categories []string   `json:"categories"`
	Sort       SortOption `json:"sort"`
	Page       int        `json:"page"`
}

// Normalize returns a copy with Page defaulted to 1 when it is below 1.
func (q QueryParams) Normalize() QueryParams {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Categories == nil {
		q.Categories = []string{}
	}
	return q
}

// ParseSortOption converts a raw query value into a SortOption. Unknown
// values are kept as-is; the ranker treats them as no preference.
func ParseSortOption(raw string) SortOption {
	return SortOption(raw)
}
