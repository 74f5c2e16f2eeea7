// Package routing talks to the external route provider and geocoder. Both
// are plain REST APIs consumed as black boxes; the dispatch engine only sees
// the RouteResult/Coordinate contracts.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

// RouteResult carries what the dispatch engine captures at delivery creation.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// OSRMClient is a route provider backed by an OSRM HTTP endpoint.
type OSRMClient struct {
	client  *http.Client
	baseURL string
}

// NewOSRMClient creates a route provider against the given OSRM base URL.
func NewOSRMClient(baseURL string, timeout time.Duration) *OSRMClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OSRMClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// DistanceDuration returns driving distance in meters and duration in
// seconds between two points. OSRM takes coordinates in lng,lat order.
func (c *OSRMClient) DistanceDuration(ctx context.Context, origin, destination domain.Coordinate) (RouteResult, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RouteResult{}, fmt.Errorf("routing: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return RouteResult{}, fmt.Errorf("routing: %v: %w", err, apperr.ErrDependency)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return RouteResult{}, fmt.Errorf("routing: osrm status %d: %w", resp.StatusCode, apperr.ErrDependency)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return RouteResult{}, fmt.Errorf("routing: decode response: %w", apperr.ErrDependency)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return RouteResult{}, apperr.ErrRouteNotFound
	}

	return RouteResult{
		DistanceMeters:  body.Routes[0].Distance,
		DurationSeconds: body.Routes[0].Duration,
	}, nil
}
