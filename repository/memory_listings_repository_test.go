package repository

import (
	"context"
	"testing"
	"time"

	"realty-api/models"
	"realty-api/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func fixtureListings() []models.Listing {
	return []models.Listing{
		{ID: 1, Title: "Canal flat", City: "Amsterdam", Type: "flat", Price: 400000, Beds: 2, AreaM2: 70, Address: "Herengracht 5", CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Garden house", City: "Amsterdam", Type: "house", Price: 650000, Beds: 4, AreaM2: 140, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Old town studio", City: "Utrecht", Type: "studio", Price: 220000, Beds: 1, AreaM2: 35, CreatedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 4, Title: "River-view flat", City: "Utrecht", Type: "flat", Price: 400000, Beds: 3, AreaM2: 90, Address: "Oudegracht 10"},
		{ID: 5, Title: "Compact flat", City: "Rotterdam", Type: "flat", Price: 260000, Beds: 1},
	}
}

func ids(list []models.Listing) []int64 {
	out := make([]int64, 0, len(list))
	for _, l := range list {
		out = append(out, l.ID)
	}
	return out
}

func TestSearchNoParamsKeepsCollectionOrder(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())

	got, err := repo.Search(context.Background(), types.SearchParams{})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(got))
}

func TestSearchEmptyCollection(t *testing.T) {
	repo := NewMemoryListingsRepository(nil)

	got, err := repo.Search(context.Background(), types.SearchParams{
		Query:    "flat",
		MinPrice: floatPtr(100),
		Sort:     types.SortPriceAsc,
	})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchFreeText(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())

	got, err := repo.Search(context.Background(), types.SearchParams{Query: "GRACHT"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids(got), "matches address case-insensitively")

	got, err = repo.Search(context.Background(), types.SearchParams{Query: "studio"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(got), "matches title and type")

	got, err = repo.Search(context.Background(), types.SearchParams{Query: "castle"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchCityAndType(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())

	got, err := repo.Search(context.Background(), types.SearchParams{City: "Amsterdam"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(got))

	got, err = repo.Search(context.Background(), types.SearchParams{City: "Amsterdam", Type: "house"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(got))

	got, err = repo.Search(context.Background(), types.SearchParams{City: "amsterdam"})
	require.NoError(t, err)
	assert.Empty(t, got, "city match is exact")
}

func TestSearchPriceBoundsAreInclusive(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())

	got, err := repo.Search(context.Background(), types.SearchParams{MinPrice: floatPtr(400000)})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 4}, ids(got))

	got, err = repo.Search(context.Background(), types.SearchParams{MaxPrice: floatPtr(260000)})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids(got))

	got, err = repo.Search(context.Background(), types.SearchParams{MinPrice: floatPtr(250000), MaxPrice: floatPtr(450000)})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 5}, ids(got))
}

func TestSearchBedsMinimum(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())

	got, err := repo.Search(context.Background(), types.SearchParams{Beds: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, ids(got))

	got, err = repo.Search(context.Background(), types.SearchParams{Beds: intPtr(0)})
	require.NoError(t, err)
	assert.Len(t, got, 5, "zero minimum keeps every listing")
}

func TestSearchSortOrders(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())
	ctx := context.Background()

	asc, err := repo.Search(ctx, types.SearchParams{Sort: types.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5, 1, 4, 2}, ids(asc), "price ties keep collection order")

	desc, err := repo.Search(ctx, types.SearchParams{Sort: types.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 4, 5, 3}, ids(desc))

	area, err := repo.Search(ctx, types.SearchParams{Sort: types.SortAreaDesc})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 1, 3, 5}, ids(area), "missing area sorts as zero")

	newest, err := repo.Search(ctx, types.SearchParams{Sort: types.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1, 4, 5}, ids(newest), "missing created_at sorts as epoch")
}

func TestSearchSortReversalWithoutTies(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, City: "A", Type: "flat", Price: 100},
		{ID: 2, City: "A", Type: "house", Price: 200},
		{ID: 3, City: "B", Type: "flat", Price: 150},
	}
	repo := NewMemoryListingsRepository(listings)
	ctx := context.Background()

	asc, err := repo.Search(ctx, types.SearchParams{Sort: types.SortPriceAsc})
	require.NoError(t, err)
	desc, err := repo.Search(ctx, types.SearchParams{Sort: types.SortPriceDesc})
	require.NoError(t, err)

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestSearchDoesNotMutateCollection(t *testing.T) {
	listings := fixtureListings()
	repo := NewMemoryListingsRepository(listings)

	_, err := repo.Search(context.Background(), types.SearchParams{Sort: types.SortPriceDesc})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(listings), "source collection keeps its order")
}

func TestGetByID(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())
	ctx := context.Background()

	l, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "Old town studio", l.Title)

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRelatedUnknownIDIsNotFound(t *testing.T) {
	repo := NewMemoryListingsRepository(fixtureListings())

	bundle, err := repo.Related(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, bundle)
}

func TestRelatedScenario(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, City: "A", Type: "flat", Price: 100},
		{ID: 2, City: "A", Type: "house", Price: 200},
		{ID: 3, City: "B", Type: "flat", Price: 150},
	}
	repo := NewMemoryListingsRepository(listings)

	bundle, err := repo.Related(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, bundle)

	assert.Equal(t, "A", bundle.City)
	assert.Equal(t, "flat", bundle.Type)
	assert.Equal(t, []int64{2}, ids(bundle.SameCity))
	assert.Equal(t, []int64{3}, ids(bundle.SameType))
	assert.Equal(t, []int64{3, 2}, ids(bundle.SimilarPrice), "ordered by price distance: 50 then 100")
}

func TestRelatedExcludesTargetAndCapsAtThree(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, City: "A", Type: "flat", Price: 100},
		{ID: 2, City: "A", Type: "flat", Price: 110},
		{ID: 3, City: "A", Type: "flat", Price: 120},
		{ID: 4, City: "A", Type: "flat", Price: 130},
		{ID: 5, City: "A", Type: "flat", Price: 140},
	}
	repo := NewMemoryListingsRepository(listings)

	bundle, err := repo.Related(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, bundle)

	for _, view := range [][]models.Listing{bundle.SameCity, bundle.SameType, bundle.SimilarPrice} {
		assert.LessOrEqual(t, len(view), 3)
		assert.NotContains(t, ids(view), int64(1))
	}
	assert.Equal(t, []int64{2, 3, 4}, ids(bundle.SameCity), "first three in collection order")
	assert.Equal(t, []int64{2, 3, 4}, ids(bundle.SimilarPrice), "closest prices first")
}

func TestRelatedSimilarPriceTiesKeepCollectionOrder(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, City: "A", Type: "flat", Price: 100},
		{ID: 2, City: "B", Type: "flat", Price: 150},
		{ID: 3, City: "C", Type: "flat", Price: 50},
		{ID: 4, City: "D", Type: "flat", Price: 150},
	}
	repo := NewMemoryListingsRepository(listings)

	bundle, err := repo.Related(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, bundle)

	// All three are 50 away from the target, so collection order decides.
	assert.Equal(t, []int64{2, 3, 4}, ids(bundle.SimilarPrice))
}

func TestRelatedStats(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, City: "A", Type: "flat", Price: 100},
		{ID: 2, City: "B", Type: "house", Price: 200},
		{ID: 3, City: "B", Type: "flat", Price: 150},
		{ID: 4, City: "C", Type: "studio", Price: 300},
		{ID: 5, City: "A", Type: "flat", Price: 120},
	}
	repo := NewMemoryListingsRepository(listings)

	bundle, err := repo.Related(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, bundle)

	// The target is counted: stats cover the entire collection.
	assert.Equal(t, []models.CityCount{
		{City: "A", Count: 2},
		{City: "B", Count: 2},
		{City: "C", Count: 1},
	}, bundle.CityStats, "descending count, ties in first-encountered order")

	assert.Equal(t, []models.TypeCount{
		{Type: "flat", Count: 3},
		{Type: "house", Count: 1},
		{Type: "studio", Count: 1},
	}, bundle.TypeStats)

	citySum, typeSum := 0, 0
	for _, s := range bundle.CityStats {
		citySum += s.Count
	}
	for _, s := range bundle.TypeStats {
		typeSum += s.Count
	}
	assert.Equal(t, len(listings), citySum)
	assert.Equal(t, len(listings), typeSum)
}

func TestScenarioFiltersFromThreeListings(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, City: "A", Type: "flat", Price: 100},
		{ID: 2, City: "A", Type: "house", Price: 200},
		{ID: 3, City: "B", Type: "flat", Price: 150},
	}
	repo := NewMemoryListingsRepository(listings)
	ctx := context.Background()

	byCity, err := repo.Search(ctx, types.SearchParams{City: "A"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(byCity))

	byPrice, err := repo.Search(ctx, types.SearchParams{MinPrice: floatPtr(120)})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(byPrice))
}
