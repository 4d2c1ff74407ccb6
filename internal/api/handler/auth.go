package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/api/response"
	"github.com/climavista/climavista/internal/auth"
	"github.com/climavista/climavista/internal/user"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	userService *user.Service
	sessions    *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *user.Service, sessions *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// Login handles POST /v1/auth/login - authenticate against the directory
// and issue a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := models.Validate(req); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	account, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Unauthorized(w, r, "invalid username or password")
			return
		}
		if errors.Is(err, user.ErrDirectoryUnavailable) {
			response.ServiceUnavailable(w, r, "user directory is unavailable")
			return
		}
		response.InternalError(w, r, "login failed")
		return
	}

	h.writeSession(w, r, account, http.StatusOK)
}

// Register handles POST /v1/auth/register - create an account and issue a
// session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if fieldErrors := models.Validate(req); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation error", fieldErrors)
		return
	}

	account, err := h.userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			response.Conflict(w, r, "username is already taken")
		case errors.Is(err, user.ErrInvalidUsername), errors.Is(err, user.ErrInvalidPassword):
			response.BadRequest(w, r, err.Error(), nil)
		case errors.Is(err, user.ErrDirectoryUnavailable):
			response.ServiceUnavailable(w, r, "user directory is unavailable")
		default:
			response.InternalError(w, r, "registration failed")
		}
		return
	}

	h.writeSession(w, r, account, http.StatusCreated)
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, account user.User, status int) {
	token, expiresAt, err := h.sessions.IssueSession(account)
	if err != nil {
		response.InternalError(w, r, "failed to issue session token")
		return
	}

	response.JSON(w, r, status, models.SessionResponse{
		Token:     token,
		ExpiresAt: models.Timestamp(expiresAt),
		User: models.Account{
			ID:       account.ID,
			Username: account.Username,
		},
	})
}
