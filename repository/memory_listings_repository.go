package repository

import (
	"context"
	"math"
	"sort"
	"strings"

	"realty-api/models"
	"realty-api/types"
)

// relatedLimit caps each of the same-city, same-type and similar-price lists.
const relatedLimit = 3

// MemoryListingsRepository serves queries from a static in-memory
// collection. It backs the mock data source and implements every
// ListingsStore operation as a pure projection: the collection is never
// mutated and each call returns freshly allocated slices.
type MemoryListingsRepository struct {
	listings []models.Listing
}

func NewMemoryListingsRepository(listings []models.Listing) *MemoryListingsRepository {
	return &MemoryListingsRepository{listings: listings}
}

// Search filters the collection stage by stage, then applies the requested
// ordering. Stages whose parameter is absent are skipped; with no sort key
// the filtered slice keeps collection order.
func (r *MemoryListingsRepository) Search(_ context.Context, params types.SearchParams) ([]models.Listing, error) {
	out := make([]models.Listing, 0, len(r.listings))
	needle := strings.ToLower(params.Query)
	for _, l := range r.listings {
		if needle != "" && !matchesText(l, needle) {
			continue
		}
		if params.City != "" && l.City != params.City {
			continue
		}
		if params.Type != "" && l.Type != params.Type {
			continue
		}
		if params.MinPrice != nil && l.Price < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && l.Price > *params.MaxPrice {
			continue
		}
		if params.Beds != nil && l.Beds < *params.Beds {
			continue
		}
		out = append(out, l)
	}
	sortListings(out, params.Sort)
	return out, nil
}

// matchesText reports whether the lowercased needle occurs in the listing's
// searchable text: title, city, address and type.
func matchesText(l models.Listing, needle string) bool {
	haystack := strings.ToLower(l.Title + l.City + l.Address + l.Type)
	return strings.Contains(haystack, needle)
}

func sortListings(list []models.Listing, key types.SortKey) {
	switch key {
	case types.SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case types.SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	case types.SortAreaDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].AreaM2 > list[j].AreaM2 })
	case types.SortNewest:
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}
}

// GetByID returns the listing with the given id, or (nil, nil) when it is
// not in the collection.
func (r *MemoryListingsRepository) GetByID(_ context.Context, id int64) (*models.Listing, error) {
	for _, l := range r.listings {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, nil
}

// Related builds the related-listings bundle for the target id: up to three
// listings sharing its city, three sharing its type, the three closest by
// price, and collection-wide city/type counts. The target itself is
// excluded from the listing views but counted in the statistics.
func (r *MemoryListingsRepository) Related(ctx context.Context, id int64) (*models.RelatedBundle, error) {
	target, err := r.GetByID(ctx, id)
	if err != nil || target == nil {
		return nil, err
	}

	bundle := &models.RelatedBundle{
		City:         target.City,
		Type:         target.Type,
		SameCity:     make([]models.Listing, 0, relatedLimit),
		SameType:     make([]models.Listing, 0, relatedLimit),
		SimilarPrice: make([]models.Listing, 0, relatedLimit),
	}

	others := make([]models.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if l.ID == target.ID {
			continue
		}
		others = append(others, l)
		if l.City == target.City && len(bundle.SameCity) < relatedLimit {
			bundle.SameCity = append(bundle.SameCity, l)
		}
		if l.Type == target.Type && len(bundle.SameType) < relatedLimit {
			bundle.SameType = append(bundle.SameType, l)
		}
	}

	// Ties in price distance keep collection order, so the result is
	// deterministic regardless of how close the prices are.
	sort.SliceStable(others, func(i, j int) bool {
		return math.Abs(others[i].Price-target.Price) < math.Abs(others[j].Price-target.Price)
	})
	if len(others) > relatedLimit {
		others = others[:relatedLimit]
	}
	bundle.SimilarPrice = append(bundle.SimilarPrice, others...)

	bundle.CityStats = r.cityStats()
	bundle.TypeStats = r.typeStats()
	return bundle, nil
}

// cityStats counts listings per city over the whole collection, ordered by
// descending count with ties in first-encountered order.
func (r *MemoryListingsRepository) cityStats() []models.CityCount {
	index := make(map[string]int)
	stats := make([]models.CityCount, 0)
	for _, l := range r.listings {
		if i, ok := index[l.City]; ok {
			stats[i].Count++
			continue
		}
		index[l.City] = len(stats)
		stats = append(stats, models.CityCount{City: l.City, Count: 1})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

func (r *MemoryListingsRepository) typeStats() []models.TypeCount {
	index := make(map[string]int)
	stats := make([]models.TypeCount, 0)
	for _, l := range r.listings {
		if i, ok := index[l.Type]; ok {
			stats[i].Count++
			continue
		}
		index[l.Type] = len(stats)
		stats = append(stats, models.TypeCount{Type: l.Type, Count: 1})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}
