// Package openmeteo provides a client for the Open-Meteo archive API.
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

	"github.com/climavista/climavista/internal/historical"
	"github.com/climavista/climavista/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the Open-Meteo archive API.
	DefaultBaseURL = "https://archive-api.open-meteo.com/v1"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo-archive"
)

// dailyVariables are the daily series requested for every archive range.
var dailyVariables = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"temperature_2m_mean",
	"precipitation_sum",
	"windspeed_10m_max",
	"winddirection_10m_dominant",
	"relative_humidity_2m_mean",
	"surface_pressure_mean",
	"cloudcover_mean",
	"uv_index_max",
}

// ClientConfig holds configuration for the archive client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 15s; archive ranges
	// can span months).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an Open-Meteo archive API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Open-Meteo archive client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
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

// FetchArchive retrieves the daily series for a location and date range.
func (c *Client) FetchArchive(ctx context.Context, lat, lon float64, startDate, endDate string) (*historical.ArchiveResponse, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(lat))
	params.Set("longitude", formatCoord(lon))
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	params.Set("daily", strings.Join(dailyVariables, ","))

	reqURL := fmt.Sprintf("%s/archive?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from archive", resp.StatusCode)
	}

	var archive historical.ArchiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return nil, fmt.Errorf("decode archive response: %w", err)
	}
	if archive.Daily == nil {
		return nil, fmt.Errorf("%w: no daily block", historical.ErrMalformedResponse)
	}
	return &archive, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Ensure Client implements the archive provider interface.
var _ historical.Provider = (*Client)(nil)
