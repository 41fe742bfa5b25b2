package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/countryexplorer/internal/client/client"
	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
	"github.com/dmitrijs2005/countryexplorer/internal/logging"
)

// CatalogService maps user intents onto catalog queries. It never touches
// the session.
type CatalogService interface {
	Browse(ctx context.Context) ([]models.Country, error)
	Search(ctx context.Context, query string) ([]models.Country, error)
	Filter(ctx context.Context, region string) ([]models.Country, error)
	Details(ctx context.Context, code string) (models.Country, error)
}

type catalogService struct {
	catalog client.Catalog
	logger  logging.Logger
}

func NewCatalogService(catalog client.Catalog, logger logging.Logger) CatalogService {
	return &catalogService{catalog: catalog, logger: logger.With("component", "catalog")}
}

func (s *catalogService) Browse(ctx context.Context) ([]models.Country, error) {
	return s.catalog.All(ctx)
}

// Search looks countries up by partial name. A blank query lists all.
func (s *catalogService) Search(ctx context.Context, query string) ([]models.Country, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.catalog.All(ctx)
	}
	return s.catalog.ByName(ctx, query)
}

// Filter lists the countries of one region. A blank region lists all; an
// unknown one fails with client.ErrUnknownRegion before any request.
func (s *catalogService) Filter(ctx context.Context, region string) ([]models.Country, error) {
	if strings.TrimSpace(region) == "" {
		return s.catalog.All(ctx)
	}
	r, err := models.ParseRegion(region)
	if err != nil {
		return nil, err
	}
	return s.catalog.ByRegion(ctx, r)
}

// Details returns the country with the given cca3 code.
func (s *catalogService) Details(ctx context.Context, code string) (models.Country, error) {
	countries, err := s.catalog.ByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return models.Country{}, err
	}
	if len(countries) == 0 {
		s.logger.Debug(ctx, "empty lookup result", "code", code)
		return models.Country{}, client.ErrNotFound
	}
	return countries[0], nil
}
