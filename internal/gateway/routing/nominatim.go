package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

// NominatimClient geocodes free-form addresses via a Nominatim endpoint.
type NominatimClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewNominatimClient creates a geocoder against the given Nominatim base URL.
func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NominatimClient{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: "cargo-dispatch-service",
	}
}

// Coordinates resolves an address to a point. Nominatim returns lat/lon as
// JSON strings.
func (c *NominatimClient) Coordinates(ctx context.Context, address string) (domain.Coordinate, error) {
	u := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode: build request: %w", err)
	}
	// Nominatim requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode: %v: %w", err, apperr.ErrDependency)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return domain.Coordinate{}, fmt.Errorf("geocode: status %d: %w", resp.StatusCode, apperr.ErrDependency)
	}

	var hits []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode: decode response: %w", apperr.ErrDependency)
	}
	if len(hits) == 0 {
		return domain.Coordinate{}, apperr.ErrAddressNotFound
	}

	lat, latErr := strconv.ParseFloat(hits[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(hits[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode: bad coordinates in response: %w", apperr.ErrDependency)
	}

	coord := domain.Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return domain.Coordinate{}, fmt.Errorf("geocode: coordinates out of range: %w", apperr.ErrDependency)
	}
	return coord, nil
}
