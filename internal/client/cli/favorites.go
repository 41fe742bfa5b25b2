package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/countryexplorer/internal/client/client"
	"github.com/dmitrijs2005/countryexplorer/internal/client/services"
)

// Favorites lists the signed-in user's favorite countries.
func (a *App) Favorites(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.report(ctx, services.ErrNotAuthenticated)
		return services.ErrNotAuthenticated
	}

	favorites := a.session.Favorites()
	if len(favorites) == 0 {
		printlnFn("No favorites yet. Add one with: fav <code>")
		return nil
	}
	for _, c := range favorites {
		printlnFn(summaryLine(c, true))
	}
	return nil
}

// Fav looks the country up in the catalog and adds it to favorites, so the
// stored entry carries the full catalog document.
func (a *App) Fav(ctx context.Context, code string) error {
	if !a.isLoggedIn() {
		a.report(ctx, services.ErrNotAuthenticated)
		return services.ErrNotAuthenticated
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if a.session.IsFavorite(code) {
		printlnFn(fmt.Sprintf("%s is already a favorite", code))
		return nil
	}

	c, err := a.catalog.Details(ctx, code)
	if errors.Is(err, client.ErrNotFound) {
		printlnFn(fmt.Sprintf("Country not found: %s", code))
		return err
	}
	if err != nil {
		a.report(ctx, err)
		return err
	}

	if err := a.session.AddFavorite(ctx, c); err != nil {
		a.report(ctx, err)
		return err
	}
	printlnFn(fmt.Sprintf("Added %s to favorites", c.Name))
	return nil
}

// Unfav removes the country with code from favorites.
func (a *App) Unfav(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	wasFavorite := a.session.IsFavorite(code)
	if err := a.session.RemoveFavorite(ctx, code); err != nil {
		a.report(ctx, err)
		return err
	}
	if !wasFavorite {
		printlnFn(fmt.Sprintf("%s is not a favorite", code))
		return nil
	}
	printlnFn(fmt.Sprintf("Removed %s from favorites", code))
	return nil
}
