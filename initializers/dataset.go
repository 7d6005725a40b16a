package initializers

import (
	_ "embed"
	"fmt"
	"time"

	"realty-api/models"

	"gopkg.in/yaml.v3"
)

//go:embed listings.yaml
var seedYAML []byte

type seedFile struct {
	Listings []seedListing `yaml:"listings"`
}

type seedListing struct {
	ID        int64     `yaml:"id"`
	Title     string    `yaml:"title"`
	City      string    `yaml:"city"`
	Type      string    `yaml:"type"`
	Price     float64   `yaml:"price"`
	Beds      int       `yaml:"beds"`
	AreaM2    float64   `yaml:"area_m2"`
	Address   string    `yaml:"address"`
	CreatedAt time.Time `yaml:"created_at"`
}

// LoadMockListings parses the embedded seed collection. The slice order is
// the collection order every unsorted query preserves.
func LoadMockListings() ([]models.Listing, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("initializers: parse embedded listings: %w", err)
	}
	if len(f.Listings) == 0 {
		return nil, fmt.Errorf("initializers: embedded listing seed is empty")
	}

	listings := make([]models.Listing, 0, len(f.Listings))
	for _, s := range f.Listings {
		listings = append(listings, models.Listing{
			ID:        s.ID,
			Title:     s.Title,
			City:      s.City,
			Type:      s.Type,
			Price:     s.Price,
			Beds:      s.Beds,
			AreaM2:    s.AreaM2,
			Address:   s.Address,
			CreatedAt: s.CreatedAt,
		})
	}
	return listings, nil
}
