package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/countryexplorer/internal/client/client"
	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
)

func (a *App) printCountries(countries []models.Country) {
	for _, c := range countries {
		printlnFn(summaryLine(c, a.session.IsFavorite(c.Code)))
	}
	printlnFn(fmt.Sprintf("%d countries", len(countries)))
}

// All lists every country in the catalog.
func (a *App) All(ctx context.Context) error {
	countries, err := a.catalog.Browse(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printCountries(countries)
	return nil
}

// Search lists countries whose name matches query. A blank query lists all.
func (a *App) Search(ctx context.Context, query string) error {
	countries, err := a.catalog.Search(ctx, query)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		a.report(ctx, err)
		return err
	}
	if len(countries) == 0 {
		printlnFn(fmt.Sprintf("No countries found matching %q", strings.TrimSpace(query)))
		return nil
	}
	a.printCountries(countries)
	return nil
}

// Region lists the countries of one region. A blank name lists all.
func (a *App) Region(ctx context.Context, name string) error {
	countries, err := a.catalog.Filter(ctx, name)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.printCountries(countries)
	return nil
}

// Show prints the details of the country with the given code.
func (a *App) Show(ctx context.Context, code string) error {
	c, err := a.catalog.Details(ctx, code)
	if errors.Is(err, client.ErrNotFound) {
		printlnFn(fmt.Sprintf("Country not found: %s", code))
		return err
	}
	if err != nil {
		a.report(ctx, err)
		return err
	}
	for _, line := range detailLines(c, a.session.IsFavorite(c.Code)) {
		printlnFn(line)
	}
	return nil
}
