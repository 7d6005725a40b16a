package handlers

import (
	"net/http"
	"strconv"

	"realty-api/models"
	"realty-api/repository"
	"realty-api/types"

	"github.com/gin-gonic/gin"
)

// ListingsHandler serves listing search, lookup and related-listings
// requests. db is nil when no database connection was configured, in which
// case every request is answered from the mock collection.
type ListingsHandler struct {
	db   repository.ListingsStore
	mock repository.ListingsStore
}

func NewListingsHandler(db repository.ListingsStore, mock repository.ListingsStore) *ListingsHandler {
	return &ListingsHandler{db: db, mock: mock}
}

// GetListings handles GET /api/listings. An empty result set is a normal
// 200 response with an empty array.
func (h *ListingsHandler) GetListings(c *gin.Context) {
	params := types.ParseSearchParams(c)

	var listings []models.Listing
	source, err := h.fromSource(c, func(s repository.ListingsStore) error {
		var err error
		listings, err = s.Search(c.Request.Context(), params)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, types.NewDataResponse(source, listings))
}

// GetListingByID handles GET /api/listings/:id. A non-numeric or unknown id
// is a 404, distinct from an empty search result.
func (h *ListingsHandler) GetListingByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Listing not found"))
		return
	}

	var listing *models.Listing
	source, err := h.fromSource(c, func(s repository.ListingsStore) error {
		var err error
		listing, err = s.GetByID(c.Request.Context(), id)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if listing == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Listing not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewDataResponse(source, listing))
}

// GetRelatedListings handles GET /api/listings/:id/related.
func (h *ListingsHandler) GetRelatedListings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Listing not found"))
		return
	}

	var bundle *models.RelatedBundle
	source, err := h.fromSource(c, func(s repository.ListingsStore) error {
		var err error
		bundle, err = s.Related(c.Request.Context(), id)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if bundle == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Listing not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewDataResponse(source, bundle))
}
