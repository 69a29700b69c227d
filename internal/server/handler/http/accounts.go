// Package http provides the HTTP handlers and routing for the directory
// service: account registration, login, file advertisement, and search.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/peerdex/internal/apperr"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AccountService defines the operations required by the account handlers.
type AccountService interface {
	// Register creates a user and returns the assigned user_id.
	Register(ctx context.Context, username, password string) (int64, error)
	// Login verifies credentials and returns the matched user_id.
	Login(ctx context.Context, username, password string) (int64, error)
}

// AccountHandler handles HTTP requests for user registration and login.
type AccountHandler struct {
	// Service performs the underlying account operations.
	Service AccountService
	// Log is the structured logger for per-operation events.
	Log *zap.Logger

	validate *validator.Validate
}

// NewAccountHandler constructs an AccountHandler with its validator.
func NewAccountHandler(svc AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{Service: svc, Log: log, validate: validator.New()}
}

// credentialsRequest represents the JSON payload for registration and login.
type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles account registration requests.
// It expects a JSON body with non-empty "username" and "password" fields,
// creates the user with a freshly salted password hash, and returns the
// assigned user_id. A duplicate username is rejected without mutating state.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Username and password are required.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.Log.Warn("registration attempt with missing username or password")
		writeMessage(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	userID, err := h.Service.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Username and password are required.")
	case errors.Is(err, apperr.ErrUsernameTaken):
		h.Log.Warn("registration failed: username already exists", zap.String("username", req.Username))
		writeMessage(w, http.StatusBadRequest, "Username already exists.")
	case err != nil:
		h.Log.Error("registration error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
	default:
		h.Log.Info("user registered",
			zap.String("username", req.Username),
			zap.Int64("user_id", userID),
		)
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully.",
			"user_id": userID,
		})
	}
}

// Login handles login requests. It verifies the supplied password against
// the stored hash and returns the matched user_id. An unknown username and
// a wrong password are indistinguishable in the response.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Username and password are required.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.Log.Warn("login attempt with missing username or password")
		writeMessage(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	userID, err := h.Service.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Username and password are required.")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		h.Log.Warn("login failed", zap.String("username", req.Username))
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials.")
	case err != nil:
		h.Log.Error("login error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
	default:
		h.Log.Info("user logged in",
			zap.String("username", req.Username),
			zap.Int64("user_id", userID),
		)
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful.",
			"user_id": userID,
		})
	}
}
