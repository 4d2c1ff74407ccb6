// Package mockapi provides a client for a mockapi.io-style user directory.
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/climavista/climavista/internal/provider/resilience"
	"github.com/climavista/climavista/internal/user"
)

// ProviderName identifies this backend.
const ProviderName = "mockapi-users"

// ClientConfig holds configuration for the directory client.
type ClientConfig struct {
	// BaseURL is the directory base URL, e.g.
	// "https://<project>.mockapi.io/api/v1". Required.
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

// Client talks to the user directory over HTTP.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// account is the directory's wire representation, password included.
type account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewClient creates a new directory client.
func NewClient(cfg ClientConfig) *Client {
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
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// FindByCredentials filters the directory by username and password.
func (c *Client) FindByCredentials(ctx context.Context, username, password string) ([]user.User, error) {
	params := url.Values{}
	params.Set("username", username)
	params.Set("password", password)
	return c.list(ctx, params)
}

// FindByUsername filters the directory by username.
func (c *Client) FindByUsername(ctx context.Context, username string) ([]user.User, error) {
	params := url.Values{}
	params.Set("username", username)
	return c.list(ctx, params)
}

// Create registers a new account.
func (c *Client) Create(ctx context.Context, username, password string) (user.User, error) {
	payload, err := json.Marshal(account{Username: username, Password: password})
	if err != nil {
		return user.User{}, fmt.Errorf("encode account: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(payload))
	if err != nil {
		return user.User{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.User{}, fmt.Errorf("create account: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return user.User{}, fmt.Errorf("unexpected status %d creating account", resp.StatusCode)
	}

	var created account
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return user.User{}, fmt.Errorf("decode created account: %w", err)
	}
	return user.User{ID: created.ID, Username: created.Username, Password: created.Password}, nil
}

func (c *Client) list(ctx context.Context, params url.Values) ([]user.User, error) {
	reqURL := fmt.Sprintf("%s/users?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer resp.Body.Close()

	// The directory answers 404 for filters with no matches.
	if resp.StatusCode == http.StatusNotFound {
		return []user.User{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d listing accounts", resp.StatusCode)
	}

	var accounts []account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	users := make([]user.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, user.User{ID: a.ID, Username: a.Username, Password: a.Password})
	}
	return users, nil
}

// Ensure Client implements the directory interface.
var _ user.Directory = (*Client)(nil)
