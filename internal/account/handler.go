package account

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/account-service/internal/httputil"
	"github.com/redmonkez12/account-service/internal/logging"
)

// Notifier sends account-lifecycle email notices. Calls are made in
// goroutines and failures never affect the originating request.
type Notifier interface {
	SendConfirmationNotice(ctx context.Context, toEmail string, accountID uuid.UUID) error
	SendPasswordChangedNotice(ctx context.Context, toEmail string) error
}

// RateLimiter guards the abuse-prone endpoints. Satisfied by ratelimit.Limiter.
type RateLimiter interface {
	CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error)
	RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error
}

// Handler contains HTTP handlers for the account endpoints
type Handler struct {
	service     *Service
	rateLimiter RateLimiter
	notifier    Notifier
	logger      *logging.Logger
}

func NewHandler(service *Service, rateLimiter RateLimiter, notifier Notifier, logger *logging.Logger) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
		notifier:    notifier,
		logger:      logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LookupRequest represents the credential lookup request body
type LookupRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// UpdatePasswordRequest represents the password update request body
type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// TwoFactorRequest represents the two-factor configuration request body.
// It replaces the stored configuration wholesale.
type TwoFactorRequest struct {
	Enabled     bool     `json:"enabled"`
	Secret      string   `json:"secret"`
	Verified    bool     `json:"verified"`
	BackupCodes []string `json:"backup_codes"`
}

// DeleteRequest represents the deregistration request body
type DeleteRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Register handles account creation
// @Summary      Register a new account
// @Description  Create a new account with email, username and password. A confirmation email will be sent.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Signup data"
// @Success      201 {object} Account
// @Failure      400 {object} ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} ErrorResponse "Email or username already exists"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.rateLimited(w, r, "register") {
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email, "username": req.Username})

	created, err := h.service.Create(r.Context(), Signup{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			httputil.RespondErrorWithCode(w, "email already exists", httputil.CodeEmailAlreadyExists, http.StatusConflict)
		case errors.Is(err, ErrDuplicateUsername):
			logger.Warn("registration failed: username already exists")
			httputil.RespondErrorWithCode(w, "username already exists", httputil.CodeUsernameAlreadyExists, http.StatusConflict)
		case errors.Is(err, ErrEmailRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeEmailRequired, http.StatusBadRequest)
		case errors.Is(err, ErrUsernameRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeUsernameRequired, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodePasswordRequired, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to register account", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("account registered", "account_id", created.ID)

	// Send the confirmation notice in a goroutine (non-blocking)
	go func() {
		emailCtx := context.Background()
		if err := h.notifier.SendConfirmationNotice(emailCtx, created.Email, created.ID); err != nil {
			h.logger.Warn("failed to send confirmation email", "email", created.Email, "error", err)
		}
	}()

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Lookup handles credential lookup
// @Summary      Look up an account by credentials
// @Description  Resolve an active account by email and/or username. All supplied fields must match; banned accounts are never returned.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body LookupRequest true "Credentials"
// @Success      200 {object} Account
// @Failure      400 {object} ErrorResponse "No credential supplied"
// @Failure      404 {object} ErrorResponse "No matching active account"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts/lookup [post]
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid lookup request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	acct, err := h.service.Find(r.Context(), Credentials{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialsRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeCredentialsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "account not found", httputil.CodeAccountNotFound, http.StatusNotFound)
		default:
			logger.Error("lookup failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to look up account", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, acct, http.StatusOK)
}

// UpdatePassword handles password updates
// @Summary      Update an account's password
// @Description  Replace the password of the active account with the given email.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body UpdatePasswordRequest true "Email and new password"
// @Success      200 {object} Account
// @Failure      400 {object} ErrorResponse "Validation error"
// @Failure      404 {object} ErrorResponse "No active account with that email"
// @Failure      429 {object} ErrorResponse "Too many requests"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts/password [put]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.rateLimited(w, r, "password") {
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid password update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	acct, err := h.service.UpdatePassword(r.Context(), req.Email, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodePasswordRequired, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
		case errors.Is(err, ErrCredentialsRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeCredentialsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			logger.Warn("password update failed: account not found")
			httputil.RespondErrorWithCode(w, "account not found", httputil.CodeAccountNotFound, http.StatusNotFound)
		default:
			logger.Error("password update failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to update password", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("password updated", "account_id", acct.ID)

	go func() {
		emailCtx := context.Background()
		if err := h.notifier.SendPasswordChangedNotice(emailCtx, acct.Email); err != nil {
			h.logger.Warn("failed to send password changed email", "email", acct.Email, "error", err)
		}
	}()

	httputil.RespondJSON(w, acct, http.StatusOK)
}

// ConfirmEmail handles email confirmation
// @Summary      Confirm an account's email
// @Description  Mark the account's email as verified. Confirming twice is a no-op success.
// @Tags         accounts
// @Produce      json
// @Param        accountID path string true "Account ID"
// @Success      200 {object} Account
// @Failure      400 {object} ErrorResponse "Invalid account ID"
// @Failure      404 {object} ErrorResponse "Account not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts/{accountID}/confirm [post]
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid account ID", httputil.CodeInvalidAccountID, http.StatusBadRequest)
		return
	}

	acct, err := h.service.ConfirmEmail(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "account not found", httputil.CodeAccountNotFound, http.StatusNotFound)
			return
		}
		logger.Error("email confirmation failed: internal error", "account_id", id, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to confirm email", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("email confirmed", "account_id", acct.ID)
	httputil.RespondJSON(w, acct, http.StatusOK)
}

// SetTwoFactor handles two-factor configuration updates
// @Summary      Replace an account's two-factor configuration
// @Description  Replace the entire two-factor configuration. Fields from the previous configuration do not survive.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        accountID path string true "Account ID"
// @Param        request body TwoFactorRequest true "New two-factor configuration"
// @Success      200 {object} Account
// @Failure      400 {object} ErrorResponse "Invalid request"
// @Failure      404 {object} ErrorResponse "Account not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts/{accountID}/two-factor [put]
func (h *Handler) SetTwoFactor(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid account ID", httputil.CodeInvalidAccountID, http.StatusBadRequest)
		return
	}

	var req TwoFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid two-factor request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	acct, err := h.service.UpdateTwoFactorAuth(r.Context(), id, &TwoFactorConfig{
		Enabled:     req.Enabled,
		Secret:      req.Secret,
		Verified:    req.Verified,
		BackupCodes: req.BackupCodes,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "account not found", httputil.CodeAccountNotFound, http.StatusNotFound)
			return
		}
		logger.Error("two-factor update failed: internal error", "account_id", id, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update two-factor config", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("two-factor config updated", "account_id", acct.ID, "enabled", req.Enabled)
	httputil.RespondJSON(w, acct, http.StatusOK)
}

// Delete handles account deregistration
// @Summary      Delete an account
// @Description  Permanently remove the account matching the credentials and return its last snapshot. Irreversible.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body DeleteRequest true "Credentials"
// @Success      200 {object} Account
// @Failure      400 {object} ErrorResponse "No credential supplied"
// @Failure      404 {object} ErrorResponse "No matching active account"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid delete request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	acct, err := h.service.Delete(r.Context(), Credentials{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialsRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeCredentialsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "account not found", httputil.CodeAccountNotFound, http.StatusNotFound)
		default:
			logger.Error("account deletion failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to delete account", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("account deleted", "account_id", acct.ID)
	httputil.RespondJSON(w, acct, http.StatusOK)
}

// GetByID handles administrative account retrieval
// @Summary      Get an account by ID
// @Description  Retrieve an account by its identifier. Returns banned accounts as well.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        accountID path string true "Account ID"
// @Success      200 {object} Account
// @Failure      400 {object} ErrorResponse "Invalid account ID"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Account not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts/{accountID} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid account ID", httputil.CodeInvalidAccountID, http.StatusBadRequest)
		return
	}

	acct, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "account not found", httputil.CodeAccountNotFound, http.StatusNotFound)
			return
		}
		logger.Error("account retrieval failed: internal error", "account_id", id, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get account", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, acct, http.StatusOK)
}

// List handles administrative bulk retrieval
// @Summary      List all accounts
// @Description  Return every account. Unpaginated; unsuitable for large datasets.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Account
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /accounts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	accounts, err := h.service.List(r.Context())
	if err != nil {
		logger.Error("account listing failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list accounts", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, accounts, http.StatusOK)
}

// rateLimited applies the per-IP limit for the given purpose. It responds
// with 429 and returns true when the caller should stop processing.
func (h *Handler) rateLimited(w http.ResponseWriter, r *http.Request, purpose string) bool {
	logger := logging.GetLoggerFromContext(r.Context())
	ip := getClientIP(r)

	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, purpose)
	if err != nil {
		// A broken limiter must not take the endpoint down with it
		logger.Error("failed to check IP rate limit", "error", err.Error())
		return false
	}
	if exceeded {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondErrorWithCode(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return true
	}

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, purpose); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	return false
}

// getClientIP extracts the client IP, trusting X-Forwarded-For when present
func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
