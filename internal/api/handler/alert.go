package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/climavista/climavista/internal/alert"
	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/api/response"
)

// AlertHandler handles alert subscription endpoints.
type AlertHandler struct {
	subscriptions *alert.SubscriptionStore
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(subscriptions *alert.SubscriptionStore) *AlertHandler {
	return &AlertHandler{subscriptions: subscriptions}
}

// GetSubscription handles GET /v1/alerts/subscription - the caller's alert
// settings. Users without stored settings get the disabled defaults.
func (h *AlertHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	subscription := h.subscriptions.Get(r.Context(), userID)
	response.JSON(w, r, http.StatusOK, models.SubscriptionResponse{
		Email:   subscription.Email,
		Enabled: subscription.Enabled,
	})
}

// UpdateSubscription handles PUT /v1/alerts/subscription.
func (h *AlertHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	var req models.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	subscription := alert.Subscription{Email: req.Email, Enabled: req.Enabled}
	if err := h.subscriptions.Set(r.Context(), userID, subscription); err != nil {
		if errors.Is(err, alert.ErrInvalidEmail) {
			response.BadRequest(w, r, "invalid email address", []models.FieldError{
				{Field: "email", Message: "must be a valid email address", Code: "email"},
			})
			return
		}
		response.InternalError(w, r, "failed to save subscription")
		return
	}

	response.JSON(w, r, http.StatusOK, models.SubscriptionResponse{
		Email:   subscription.Email,
		Enabled: subscription.Enabled,
	})
}
