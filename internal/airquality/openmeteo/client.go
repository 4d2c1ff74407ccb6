// Package openmeteo provides a client for the Open-Meteo air-quality API.
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

	"github.com/climavista/climavista/internal/airquality"
	"github.com/climavista/climavista/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Open-Meteo air-quality API.
	DefaultBaseURL = "https://air-quality-api.open-meteo.com/v1"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo-air-quality"
)

// pollutantVariables are requested both as current values and hourly series.
var pollutantVariables = []string{"us_aqi", "pm2_5", "pm10"}

// ClientConfig holds configuration for the air-quality client.
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

// Client is an Open-Meteo air-quality API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Open-Meteo air-quality client.
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

// FetchCurrent retrieves the current US AQI and particulate concentrations.
func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64) (*airquality.CurrentBundle, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("current", strings.Join(pollutantVariables, ","))
	params.Set("hourly", strings.Join(pollutantVariables, ","))
	params.Set("forecast_days", "1")

	reqURL := fmt.Sprintf("%s/air-quality?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch air quality: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from air-quality", resp.StatusCode)
	}

	var bundle airquality.CurrentBundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decode air-quality response: %w", err)
	}
	return &bundle, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Ensure Client implements the air-quality provider interface.
var _ airquality.Provider = (*Client)(nil)
