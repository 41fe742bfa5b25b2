package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
)

var (
	ErrTransport   = errors.New("catalog unavailable")
	ErrNotFound    = errors.New("not found")
	ErrEmptyQuery  = errors.New("empty search query")
	ErrInvalidCode = errors.New("country code must be 3 letters")

	// ErrUnknownRegion is shared with models so either package's value matches.
	ErrUnknownRegion = models.ErrUnknownRegion
)

// TransportError describes a failed catalog request. StatusCode is zero when
// no HTTP response was received.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %d %s", e.Op, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
