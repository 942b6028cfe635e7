// Package places forwards free-text queries to the external places API and
// reshapes the results. Stateless: no retries, no caching, no pagination.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
)

//go:generate mockery --name Searcher --output ./mocks --outpkg mocks --case=underscore
type Searcher interface {
	TextSearch(ctx context.Context, query string) ([]model.Spot, error)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// textSearchResponse is the subset of the upstream payload we read.
type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string   `json:"place_id"`
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Rating           float64  `json:"rating"`
		Types            []string `json:"types"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

func (c *Client) TextSearch(ctx context.Context, query string) ([]model.Spot, error) {
	logger := middleware.GetLogger(ctx)

	endpoint := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("places: creating search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places: calling text search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Places API returned non-OK status", "status", resp.StatusCode)
		return nil, fmt.Errorf("places: text search returned status %d", resp.StatusCode)
	}

	var payload textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("places: decoding search response: %w", err)
	}

	// ZERO_RESULTS is a successful empty answer, not a failure.
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		logger.Error("Places API rejected the query", "api_status", payload.Status)
		return nil, fmt.Errorf("places: text search status %q", payload.Status)
	}

	spots := make([]model.Spot, 0, len(payload.Results))
	for _, result := range payload.Results {
		spot := model.Spot{
			SpotID:  result.PlaceID,
			Name:    result.Name,
			Address: result.FormattedAddress,
			Rating:  result.Rating,
			Types:   result.Types,
		}
		for _, photo := range result.Photos {
			spot.Photos = append(spot.Photos, photo.PhotoReference)
		}
		spots = append(spots, spot)
	}
	return spots, nil
}
