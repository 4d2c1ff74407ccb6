// Package openmeteo provides a client for the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/climavista/climavista/internal/provider/resilience"
	"github.com/climavista/climavista/internal/weather"
)

const (
	// DefaultBaseURL is the base URL for the Open-Meteo forecast API.
	DefaultBaseURL = "https://api.open-meteo.com/v1"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo"
)

// hourlyVariables are the hourly series requested alongside current weather.
var hourlyVariables = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"windspeed_10m",
	"surface_pressure",
	"weathercode",
	"uv_index",
}

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an Open-Meteo forecast API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Open-Meteo forecast client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:          ProviderName,
			Timeout:       timeout,
			MaxRetries:    3,
			RetryInterval: 1 * time.Second,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Name returns the provider name for logging.
func (c *Client) Name() string {
	return ProviderName
}

// FetchForecast retrieves current weather, the hourly series, and alerts.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) (*weather.ForecastBundle, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("current_weather", "true")
	params.Set("hourly", strings.Join(hourlyVariables, ","))
	params.Set("weather_alerts", "true")

	var bundle weather.ForecastBundle
	if err := c.getJSON(ctx, "/forecast", params, &bundle); err != nil {
		return nil, err
	}

	if bundle.CurrentWeather == nil && bundle.Hourly == nil {
		return nil, fmt.Errorf("%w: no current_weather or hourly block", weather.ErrMalformedResponse)
	}
	return &bundle, nil
}

// FetchRainProbability retrieves the hourly precipitation probability series.
func (c *Client) FetchRainProbability(ctx context.Context, lat, lon float64) (*weather.RainProbabilityBundle, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("hourly", "precipitation_probability")

	var bundle weather.RainProbabilityBundle
	if err := c.getJSON(ctx, "/forecast", params, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Ensure Client implements the weather provider interface.
var _ weather.Provider = (*Client)(nil)
