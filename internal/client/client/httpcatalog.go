package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
	"github.com/dmitrijs2005/countryexplorer/internal/logging"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://restcountries.com/v3.1"

// maxErrorBody caps how much of an error response is kept for the log.
const maxErrorBody = 512

// HTTPCatalog implements Catalog over the restcountries REST API.
type HTTPCatalog struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	logger  logging.Logger
}

type HTTPCatalogOption func(*HTTPCatalog)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) HTTPCatalogOption {
	return func(h *HTTPCatalog) { h.http = c }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) HTTPCatalogOption {
	return func(h *HTTPCatalog) { h.timeout = d }
}

// WithRateLimit paces outgoing requests to rps per second. Zero or less
// disables pacing.
func WithRateLimit(rps float64) HTTPCatalogOption {
	return func(h *HTTPCatalog) {
		if rps > 0 {
			h.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			h.limiter = nil
		}
	}
}

func NewHTTPCatalog(baseURL string, logger logging.Logger, opts ...HTTPCatalogOption) *HTTPCatalog {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	h := &HTTPCatalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  logger.With("component", "catalog"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HTTPCatalog) All(ctx context.Context) ([]models.Country, error) {
	return h.get(ctx, "all", "/all")
}

func (h *HTTPCatalog) ByName(ctx context.Context, query string) ([]models.Country, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return h.get(ctx, "by-name", "/name/"+url.PathEscape(query))
}

func (h *HTTPCatalog) ByRegion(ctx context.Context, region models.Region) ([]models.Country, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, string(region))
	}
	return h.get(ctx, "by-region", "/region/"+url.PathEscape(string(region)))
}

func (h *HTTPCatalog) ByCode(ctx context.Context, code string) ([]models.Country, error) {
	if !isAlpha3(code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return h.get(ctx, "by-code", "/alpha/"+url.PathEscape(code))
}

func isAlpha3(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func (h *HTTPCatalog) get(ctx context.Context, op, path string) ([]models.Country, error) {
	target := h.baseURL + path

	countries, err := h.do(ctx, op, target)
	if errors.Is(err, ErrNotFound) {
		// restcountries answers 404 for an empty match.
		h.logger.Info(ctx, "catalog request failed", "op", op, "url", target, "error", err)
		return nil, err
	}
	if err != nil {
		h.logger.Error(ctx, "catalog request failed", "op", op, "url", target, "error", err)
		return nil, err
	}

	h.logger.Debug(ctx, "catalog request done", "op", op, "url", target, "count", len(countries))
	return countries, nil
}

func (h *HTTPCatalog) do(ctx context.Context, op, target string) ([]models.Country, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: op, URL: target, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			Op:         op,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s; body: %s", resp.Status, strings.TrimSpace(string(b))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: target, Err: err}
	}

	countries, err := decodeCountries(body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: target, Err: fmt.Errorf("decode response: %w", err)}
	}
	return countries, nil
}

// decodeCountries accepts either a JSON array of countries or a single
// country object, which is wrapped into a one-element list.
func decodeCountries(body []byte) ([]models.Country, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var c models.Country
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, err
		}
		return []models.Country{c}, nil
	}

	var countries []models.Country
	if err := json.Unmarshal(trimmed, &countries); err != nil {
		return nil, err
	}
	if countries == nil {
		countries = []models.Country{}
	}
	return countries, nil
}
