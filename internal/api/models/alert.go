package models

// SubscriptionRequest is the body of PUT /v1/alerts/subscription.
type SubscriptionRequest struct {
	Email   string `json:"email"`
	Enabled bool   `json:"enabled"`
}

// SubscriptionResponse is the payload for GET /v1/alerts/subscription.
type SubscriptionResponse struct {
	Email   string `json:"email"`
	Enabled bool   `json:"enabled"`
}
