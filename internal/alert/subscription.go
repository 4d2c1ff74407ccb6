// Package alert provides email alert subscriptions and risky-air-quality
// dispatch.
package alert

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/kv"
)

// Subscription store keys.
const (
	emailKey   = "alertEmail"
	enabledKey = "alertsEnabled"
)

// ErrInvalidEmail is returned when a subscription email does not look like
// an address.
var ErrInvalidEmail = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Subscription is the alert preference of a user.
type Subscription struct {
	Email   string `json:"email"`
	Enabled bool   `json:"enabled"`
}

// SubscriptionStore persists alert preferences in a kv.Store, one pair of
// keys per user.
type SubscriptionStore struct {
	store  kv.Store
	logger zerolog.Logger
}

// NewSubscriptionStore creates a subscription store.
func NewSubscriptionStore(store kv.Store, logger zerolog.Logger) *SubscriptionStore {
	return &SubscriptionStore{store: store, logger: logger}
}

// Get returns the subscription for a user. A user with no stored preference
// gets the zero subscription (no email, disabled).
func (s *SubscriptionStore) Get(ctx context.Context, userID string) Subscription {
	sub := Subscription{}

	if raw, err := s.store.Get(ctx, userKey(userID, emailKey)); err == nil {
		sub.Email = string(raw)
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to read alert email")
	}

	if raw, err := s.store.Get(ctx, userKey(userID, enabledKey)); err == nil {
		sub.Enabled = string(raw) == "true"
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to read alert flag")
	}

	return sub
}

// Set validates and persists a subscription.
func (s *SubscriptionStore) Set(ctx context.Context, userID string, sub Subscription) error {
	if sub.Enabled && !emailPattern.MatchString(sub.Email) {
		return ErrInvalidEmail
	}
	if sub.Email != "" && !emailPattern.MatchString(sub.Email) {
		return ErrInvalidEmail
	}

	if err := s.store.Set(ctx, userKey(userID, emailKey), []byte(sub.Email)); err != nil {
		return fmt.Errorf("persist alert email: %w", err)
	}

	enabled := "false"
	if sub.Enabled {
		enabled = "true"
	}
	if err := s.store.Set(ctx, userKey(userID, enabledKey), []byte(enabled)); err != nil {
		return fmt.Errorf("persist alert flag: %w", err)
	}
	return nil
}

// ListEnabled returns the subscriptions that are enabled and have an email,
// keyed by user ID.
func (s *SubscriptionStore) ListEnabled(ctx context.Context) (map[string]Subscription, error) {
	keys, err := s.store.ListKeys(ctx, "alerts/")
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	userIDs := map[string]struct{}{}
	for _, key := range keys {
		if id, ok := userFromKey(key); ok {
			userIDs[id] = struct{}{}
		}
	}

	enabled := map[string]Subscription{}
	for id := range userIDs {
		sub := s.Get(ctx, id)
		if sub.Enabled && sub.Email != "" {
			enabled[id] = sub
		}
	}
	return enabled, nil
}

// userKey namespaces a subscription key per user, e.g.
// "alerts/usr123/alertEmail".
func userKey(userID, key string) string {
	return fmt.Sprintf("alerts/%s/%s", userID, key)
}

func userFromKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, "alerts/")
	if !ok {
		return "", false
	}
	id, _, ok := strings.Cut(rest, "/")
	return id, ok && id != ""
}
