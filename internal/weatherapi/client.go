package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the WeatherAPI.com API root.
const DefaultBaseURL = "https://api.weatherapi.com/v1"

// Provider is the capability the dashboard needs from a weather backend.
// The coordinator depends on this interface so tests can substitute a fake.
type Provider interface {
	Forecast(ctx context.Context, query string) (*ForecastResponse, error)
	Search(ctx context.Context, query string) ([]Location, error)
}

// Client handles WeatherAPI.com interactions.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

var _ Provider = (*Client)(nil)

// NewClient creates a new WeatherAPI.com client.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("key", c.APIKey)
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API error: %d %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Forecast fetches current conditions plus a 7-day hourly forecast for a
// location query. Air quality and alert blocks are not requested.
func (c *Client) Forecast(ctx context.Context, query string) (*ForecastResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("days", "7")
	params.Set("aqi", "no")
	params.Set("alerts", "no")

	data, err := c.get(ctx, "/forecast.json", params)
	if err != nil {
		return nil, err
	}

	var fr ForecastResponse
	if err := json.Unmarshal(data, &fr); err != nil {
		return nil, err
	}
	return &fr, nil
}

// Search returns location matches for a partial query.
func (c *Client) Search(ctx context.Context, query string) ([]Location, error) {
	params := url.Values{}
	params.Set("q", query)

	data, err := c.get(ctx, "/search.json", params)
	if err != nil {
		return nil, err
	}

	var locs []Location
	if err := json.Unmarshal(data, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}
