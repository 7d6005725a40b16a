package models

import "time"

// Listing is a single real-estate record. Beds, AreaM2, Address and
// CreatedAt are optional; their zero values mean "not provided" and are
// treated as 0 (or the epoch) by comparisons.
type Listing struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	City      string    `db:"city" json:"city"`
	Type      string    `db:"type" json:"type"`
	Price     float64   `db:"price" json:"price"`
	Beds      int       `db:"beds" json:"beds,omitempty"`
	AreaM2    float64   `db:"area_m2" json:"areaM2,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt,omitempty"`
}

// CityCount is one row of the per-city aggregation.
type CityCount struct {
	City  string `db:"city" json:"city"`
	Count int    `db:"count" json:"count"`
}

// TypeCount is one row of the per-type aggregation.
type TypeCount struct {
	Type  string `db:"type" json:"type"`
	Count int    `db:"count" json:"count"`
}

// RelatedBundle groups everything shown on a listing's "related" panel:
// up to three listings from the same city, the same type, and the closest
// price band, plus collection-wide city/type counts.
type RelatedBundle struct {
	City         string      `json:"city"`
	Type         string      `json:"type"`
	SameCity     []Listing   `json:"sameCity"`
	SameType     []Listing   `json:"sameType"`
	SimilarPrice []Listing   `json:"similarPrice"`
	CityStats    []CityCount `json:"cityStats"`
	TypeStats    []TypeCount `json:"typeStats"`
}
