package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/countryexplorer/internal/client/client"
	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
	"github.com/dmitrijs2005/countryexplorer/internal/client/services"
)

const (
	msgDuplicateUsername = "Username already exists"
	msgInvalidLogin      = "Invalid username or password"
	msgInvalidInput      = "Username and password are required"
	msgNotAuthenticated  = "You must be logged in to manage favorites"
	msgFetchFailed       = "Failed to fetch countries. Please try again later."
	msgInvalidCode       = "Country codes have 3 letters, e.g. DEU"
	msgSaveFailed        = "Could not save your changes. Please try again."
)

func unknownRegionMessage() string {
	names := make([]string, 0, len(models.Regions))
	for _, r := range models.Regions {
		names = append(names, string(r))
	}
	return "Unknown region. Choose one of: " + strings.Join(names, ", ")
}

// userMessage turns a service error into the line shown to the user.
// Not-found errors are worded by the caller, which knows what was looked up.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrDuplicateUsername):
		return msgDuplicateUsername
	case errors.Is(err, services.ErrInvalidCredentials):
		return msgInvalidLogin
	case errors.Is(err, services.ErrInvalidInput):
		return msgInvalidInput
	case errors.Is(err, services.ErrNotAuthenticated):
		return msgNotAuthenticated
	case errors.Is(err, services.ErrPersistence):
		return msgSaveFailed
	case errors.Is(err, client.ErrUnknownRegion):
		return unknownRegionMessage()
	case errors.Is(err, client.ErrInvalidCode):
		return msgInvalidCode
	case errors.Is(err, client.ErrTransport):
		return msgFetchFailed
	}
	return "Error: " + err.Error()
}

func (a *App) report(ctx context.Context, err error) {
	a.logger.Debug(ctx, "command failed", "error", err)
	printlnFn(userMessage(err))
}
