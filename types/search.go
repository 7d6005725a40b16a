package types

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// SortKey enumerates the orderings a search may request.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortAreaDesc  SortKey = "area_desc"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps the raw sort parameter to a SortKey. Unrecognized
// values mean "no reordering", not an error.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceAsc, SortPriceDesc, SortAreaDesc, SortNewest:
		return SortKey(raw)
	default:
		return SortNone
	}
}

// Source identifies which backend produced a response.
type Source string

const (
	// SourceAuto lets the server pick a backend and fall back on failure.
	SourceAuto     Source = ""
	SourceDatabase Source = "database"
	SourceMock     Source = "mock"
)

// ParseSource reads the source override from its query parameter form.
// Only "db" and "mock" are recognized; anything else is automatic selection.
func ParseSource(raw string) Source {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "db":
		return SourceDatabase
	case "mock":
		return SourceMock
	default:
		return SourceAuto
	}
}

// SearchParams is the typed form of the listing search query string.
// Nil pointers and empty strings mean the corresponding filter is skipped.
type SearchParams struct {
	Query    string
	City     string
	Type     string
	MinPrice *float64
	MaxPrice *float64
	Beds     *int
	Sort     SortKey
}

// ParseSearchParams extracts search parameters from the request. All
// numeric coercion happens here: absent, empty or unparseable values
// disable the filter instead of failing the request.
func ParseSearchParams(c *gin.Context) SearchParams {
	return SearchParams{
		Query:    strings.TrimSpace(c.Query("q")),
		City:     strings.TrimSpace(c.Query("city")),
		Type:     strings.TrimSpace(c.Query("type")),
		MinPrice: optionalFloat(c.Query("minPrice")),
		MaxPrice: optionalFloat(c.Query("maxPrice")),
		Beds:     optionalInt(c.Query("beds")),
		Sort:     ParseSortKey(c.Query("sort")),
	}
}

func optionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func optionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
