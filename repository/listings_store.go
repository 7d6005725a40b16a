package repository

import (
	"context"

	"realty-api/models"
	"realty-api/types"
)

// ListingsStore is implemented by both the database-backed repository and
// the in-memory mock repository, so handlers can run the same request
// against either backend.
//
// Lookup methods return (nil, nil) when the listing does not exist; a
// missing record is a valid outcome, not an error.
type ListingsStore interface {
	Search(ctx context.Context, params types.SearchParams) ([]models.Listing, error)
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
	Related(ctx context.Context, id int64) (*models.RelatedBundle, error)
}
