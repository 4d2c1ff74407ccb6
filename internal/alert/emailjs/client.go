// Package emailjs provides a client for the EmailJS send API.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/climavista/climavista/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the EmailJS API base URL.
	DefaultBaseURL = "https://api.emailjs.com/api/v1.0"

	// ProviderName identifies this provider.
	ProviderName = "emailjs"
)

// ClientConfig holds configuration for the EmailJS client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// ServiceID is the EmailJS service to send through. Required.
	ServiceID string

	// TemplateID is the template rendered for alert emails. Required.
	TemplateID string

	// PublicKey is the EmailJS account public key. Required.
	PublicKey string

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

// Client sends templated emails through EmailJS.
type Client struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	httpClient HTTPDoer
}

// sendRequest is the EmailJS wire format.
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewClient creates a new EmailJS client.
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
		baseURL:    baseURL,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		httpClient: httpClient,
	}
}

// Name returns the provider name for logging.
func (c *Client) Name() string {
	return ProviderName
}

// Send renders the configured template with the given params and sends it.
func (c *Client) Send(ctx context.Context, params map[string]string) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d sending email", resp.StatusCode)
	}
	return nil
}
