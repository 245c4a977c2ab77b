package domain

import "fmt"

type Sort string

const (
	SortDefault    Sort = ""
	SortNewest     Sort = "newest"
	SortPriceAsc   Sort = "price_asc"
	SortPriceDesc  Sort = "price_desc"
	SortRatingDesc Sort = "rating_desc"
	SortRatingAsc  Sort = "rating_asc"
)

// Sorts lists every non-default sort in the order a picker shows them.
var Sorts = []Sort{SortNewest, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortRatingAsc}

func (s Sort) Valid() bool {
	if s == SortDefault {
		return true
	}
	for _, known := range Sorts {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSort validates untrusted input, e.g. a CLI flag.
func ParseSort(raw string) (Sort, error) {
	s := Sort(raw)
	if !s.Valid() {
		return SortDefault, fmt.Errorf("unknown sort %q", raw)
	}
	return s, nil
}

// Filters is the user's current catalog selection. Empty fields are not sent.
type Filters struct {
	Text     string
	Category string
	Sort     Sort
}
