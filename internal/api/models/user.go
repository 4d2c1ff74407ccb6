package models

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4"`
	Password string `json:"password" validate:"required,min=6"`
}

// Account is the public view of a user account.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SessionResponse is returned by the login and register endpoints.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt Timestamp `json:"expiresAt"`
	User      Account   `json:"user"`
}
