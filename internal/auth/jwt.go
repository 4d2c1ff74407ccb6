// Package auth issues and validates the session tokens returned by login.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/climavista/climavista/internal/user"
)

// SessionExpiry is how long session tokens are valid. Sessions are
// stateless: expiry is the only revocation mechanism.
const SessionExpiry = 24 * time.Hour

// Predefined token errors.
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token has expired")
)

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	jwt.RegisteredClaims

	// UserID is the authenticated user's directory ID.
	UserID string `json:"uid"`

	// Username is the authenticated user's display name.
	Username string `json:"username"`
}

// JWTConfig holds configuration for the JWT service.
type JWTConfig struct {
	// SigningKey is the secret key used to sign tokens.
	SigningKey []byte

	// Issuer is the issuer claim (e.g. "https://api.climavista.cr").
	Issuer string

	// Audience is the audience claim (e.g. "climavista-api").
	Audience string

	// Expiry overrides the default session expiry.
	Expiry time.Duration
}

// JWTService creates and validates session tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
	expiry     time.Duration
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg JWTConfig) *JWTService {
	expiry := cfg.Expiry
	if expiry == 0 {
		expiry = SessionExpiry
	}
	return &JWTService{
		signingKey: cfg.SigningKey,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		expiry:     expiry,
	}
}

// IssueSession creates a session token for the given account.
func (s *JWTService) IssueSession(account user.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   account.ID,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        generateTokenID(),
		},
		UserID:   account.ID,
		Username: account.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateSession validates a session token and returns its claims.
func (s *JWTService) ValidateSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// generateTokenID generates a unique token ID.
func generateTokenID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
