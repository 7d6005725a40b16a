package repository

import (
	"context"
	"database/sql"
	"fmt"

	"realty-api/models"
	"realty-api/types"

	"github.com/jmoiron/sqlx"
)

// ListingsRepository serves queries from PostgreSQL. It mirrors the
// semantics of MemoryListingsRepository so the two are interchangeable
// behind ListingsStore.
type ListingsRepository struct {
	DB *sqlx.DB
}

func NewListingsRepository(db *sqlx.DB) *ListingsRepository {
	return &ListingsRepository{DB: db}
}

// Optional columns are coalesced so NULLs scan as the same defaults the
// in-memory engine uses for missing values.
const listingColumns = `id, title, city, type, price,
	COALESCE(beds, 0) AS beds,
	COALESCE(area_m2, 0) AS area_m2,
	COALESCE(address, '') AS address,
	COALESCE(created_at, 'epoch'::timestamptz) AS created_at`

// Search builds the WHERE clause dynamically from the provided filters and
// appends an ORDER BY drawn from a fixed whitelist keyed by the sort
// parameter. Absent filters contribute no condition.
func (r *ListingsRepository) Search(ctx context.Context, params types.SearchParams) ([]models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE TRUE`
	args := []interface{}{}
	idx := 1

	if params.Query != "" {
		query += fmt.Sprintf(" AND (title || city || COALESCE(address, '') || type) ILIKE '%%' || $%d || '%%'", idx)
		args = append(args, params.Query)
		idx++
	}
	if params.City != "" {
		query += fmt.Sprintf(" AND city = $%d", idx)
		args = append(args, params.City)
		idx++
	}
	if params.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", idx)
		args = append(args, params.Type)
		idx++
	}
	if params.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", idx)
		args = append(args, *params.MinPrice)
		idx++
	}
	if params.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", idx)
		args = append(args, *params.MaxPrice)
		idx++
	}
	if params.Beds != nil {
		query += fmt.Sprintf(" AND beds >= $%d", idx)
		args = append(args, *params.Beds)
		idx++
	}
	query += " ORDER BY " + orderClause(params.Sort)

	listings := []models.Listing{}
	if err := r.DB.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("ListingsRepository.Search: %w", err)
	}
	return listings, nil
}

// orderClause maps a sort key to a whitelisted ORDER BY expression. The
// insertion-order fallback is the primary key.
func orderClause(key types.SortKey) string {
	switch key {
	case types.SortPriceAsc:
		return "price ASC, id ASC"
	case types.SortPriceDesc:
		return "price DESC, id ASC"
	case types.SortAreaDesc:
		// NULLS LAST keeps parity with the in-memory engine, where a
		// missing area sorts as zero.
		return "area_m2 DESC NULLS LAST, id ASC"
	case types.SortNewest:
		return "created_at DESC NULLS LAST, id ASC"
	default:
		return "id ASC"
	}
}

// GetByID returns (nil, nil) when the row does not exist.
func (r *ListingsRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	var l models.Listing
	err := r.DB.GetContext(ctx, &l, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ListingsRepository.GetByID: %w", err)
	}
	return &l, nil
}

// Related assembles the related-listings bundle with one query per view.
// Statistics cover the whole table; the listing views exclude the target.
func (r *ListingsRepository) Related(ctx context.Context, id int64) (*models.RelatedBundle, error) {
	target, err := r.GetByID(ctx, id)
	if err != nil || target == nil {
		return nil, err
	}

	bundle := &models.RelatedBundle{
		City:         target.City,
		Type:         target.Type,
		SameCity:     []models.Listing{},
		SameType:     []models.Listing{},
		SimilarPrice: []models.Listing{},
	}

	err = r.DB.SelectContext(ctx, &bundle.SameCity, `
		SELECT `+listingColumns+` FROM listings
		WHERE city = $1 AND id <> $2
		ORDER BY id ASC
		LIMIT $3
	`, target.City, target.ID, relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("ListingsRepository.Related (city): %w", err)
	}

	err = r.DB.SelectContext(ctx, &bundle.SameType, `
		SELECT `+listingColumns+` FROM listings
		WHERE type = $1 AND id <> $2
		ORDER BY id ASC
		LIMIT $3
	`, target.Type, target.ID, relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("ListingsRepository.Related (type): %w", err)
	}

	err = r.DB.SelectContext(ctx, &bundle.SimilarPrice, `
		SELECT `+listingColumns+` FROM listings
		WHERE id <> $1
		ORDER BY ABS(price - $2) ASC, id ASC
		LIMIT $3
	`, target.ID, target.Price, relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("ListingsRepository.Related (price): %w", err)
	}

	err = r.DB.SelectContext(ctx, &bundle.CityStats, `
		SELECT city, COUNT(*) AS count FROM listings
		GROUP BY city
		ORDER BY count DESC, MIN(id) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ListingsRepository.Related (city stats): %w", err)
	}

	err = r.DB.SelectContext(ctx, &bundle.TypeStats, `
		SELECT type, COUNT(*) AS count FROM listings
		GROUP BY type
		ORDER BY count DESC, MIN(id) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ListingsRepository.Related (type stats): %w", err)
	}

	return bundle, nil
}
