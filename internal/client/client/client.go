package client

import (
	"context"

	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
)

// Catalog is the read-only country directory.
type Catalog interface {
	All(ctx context.Context) ([]models.Country, error)
	ByName(ctx context.Context, query string) ([]models.Country, error)
	ByRegion(ctx context.Context, region models.Region) ([]models.Country, error)
	// ByCode returns a one-element list holding the country with the given
	// 3-letter code.
	ByCode(ctx context.Context, code string) ([]models.Country, error)
}
