package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/account-service/internal/logging"
)

// ---- test doubles ----

type fakeLimiter struct {
	exceeded bool
}

func (f *fakeLimiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	return f.exceeded, nil
}
func (f *fakeLimiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	return nil
}

type fakeNotifier struct{}

func (fakeNotifier) SendConfirmationNotice(ctx context.Context, toEmail string, accountID uuid.UUID) error {
	return nil
}
func (fakeNotifier) SendPasswordChangedNotice(ctx context.Context, toEmail string) error {
	return nil
}

// ---- helpers ----

func newTestRouter(store AccountStore, limiter RateLimiter) *chi.Mux {
	h := NewHandler(NewService(store), limiter, fakeNotifier{}, logging.NewLogger(true))

	r := chi.NewRouter()
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Post("/lookup", h.Lookup)
		r.Put("/password", h.UpdatePassword)
		r.Post("/{accountID}/confirm", h.ConfirmEmail)
		r.Put("/{accountID}/two-factor", h.SetTwoFactor)
		r.Delete("/", h.Delete)
		r.Get("/", h.List)
		r.Get("/{accountID}", h.GetByID)
	})
	return r
}

func doRequest(router http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var testAccount = &Account{
	ID:        uuid.MustParse("5f4e2a1c-9d3b-4c7e-8a6f-0b1d2e3f4a5b"),
	Email:     "a@x.com",
	Username:  "a",
	Confirmed: false,
	Role:      RoleUser,
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// ---- tests ----

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		insertFn       func(ctx context.Context, signup Signup) (*Account, error)
		limiter        *fakeLimiter
		expectedStatus int
	}{
		{
			name: "success - creates account",
			body: map[string]string{"email": "a@x.com", "username": "a", "password": "pw123456"},
			insertFn: func(ctx context.Context, signup Signup) (*Account, error) {
				return testAccount, nil
			},
			limiter:        &fakeLimiter{},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "conflict - duplicate email",
			body: map[string]string{"email": "a@x.com", "username": "b", "password": "pw123456"},
			insertFn: func(ctx context.Context, signup Signup) (*Account, error) {
				return nil, ErrDuplicateEmail
			},
			limiter:        &fakeLimiter{},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "conflict - duplicate username",
			body: map[string]string{"email": "b@x.com", "username": "a", "password": "pw123456"},
			insertFn: func(ctx context.Context, signup Signup) (*Account, error) {
				return nil, ErrDuplicateUsername
			},
			limiter:        &fakeLimiter{},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "bad request - missing password",
			body: map[string]string{"email": "a@x.com", "username": "a"},
			insertFn: func(ctx context.Context, signup Signup) (*Account, error) {
				return nil, ErrPasswordRequired
			},
			limiter:        &fakeLimiter{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too many requests - rate limited",
			body:           map[string]string{"email": "a@x.com", "username": "a", "password": "pw123456"},
			insertFn:       nil,
			limiter:        &fakeLimiter{exceeded: true},
			expectedStatus: http.StatusTooManyRequests,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockStore{insertFn: tt.insertFn}, tt.limiter)
			w := doRequest(router, http.MethodPost, "/accounts", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_Register_ResponseRedactsSensitiveFields(t *testing.T) {
	acct := &Account{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Username:     "a",
		PasswordHash: "$argon2id$...",
		Role:         RoleUser,
		TwoFactor:    &TwoFactorConfig{Enabled: true, Secret: "topsecret", BackupCodes: []string{"c1"}},
	}
	router := newTestRouter(&mockStore{
		insertFn: func(ctx context.Context, signup Signup) (*Account, error) { return acct, nil },
	}, &fakeLimiter{})

	w := doRequest(router, http.MethodPost, "/accounts", map[string]string{
		"email": "a@x.com", "username": "a", "password": "pw123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	body := w.Body.String()
	if strings.Contains(body, "argon2id") {
		t.Error("response contains the password hash")
	}
	if strings.Contains(body, "topsecret") {
		t.Error("response contains the two-factor secret")
	}
	if strings.Contains(body, "c1") {
		t.Error("response contains backup codes")
	}
}

func TestHandler_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		findFn         func(ctx context.Context, login Credentials) (*Account, error)
		expectedStatus int
	}{
		{
			name: "success - account found",
			body: map[string]string{"email": "a@x.com"},
			findFn: func(ctx context.Context, login Credentials) (*Account, error) {
				return testAccount, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - banned or missing account",
			body: map[string]string{"email": "a@x.com"},
			findFn: func(ctx context.Context, login Credentials) (*Account, error) {
				return nil, ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "bad request - no credential supplied",
			body: map[string]string{},
			findFn: func(ctx context.Context, login Credentials) (*Account, error) {
				return nil, ErrCredentialsRequired
			},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockStore{findByCredentialsFn: tt.findFn}, &fakeLimiter{})
			w := doRequest(router, http.MethodPost, "/accounts/lookup", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_UpdatePassword(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		updateFn       func(ctx context.Context, email, newPassword string) (*Account, error)
		expectedStatus int
	}{
		{
			name: "success - password updated",
			body: map[string]string{"email": "a@x.com", "new_password": "newpw789"},
			updateFn: func(ctx context.Context, email, newPassword string) (*Account, error) {
				return testAccount, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - no active account with email",
			body: map[string]string{"email": "gone@x.com", "new_password": "newpw789"},
			updateFn: func(ctx context.Context, email, newPassword string) (*Account, error) {
				return nil, ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "bad request - password too short",
			body: map[string]string{"email": "a@x.com", "new_password": "short"},
			updateFn: func(ctx context.Context, email, newPassword string) (*Account, error) {
				return nil, ErrPasswordTooShort
			},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockStore{updatePasswordFn: tt.updateFn}, &fakeLimiter{})
			w := doRequest(router, http.MethodPut, "/accounts/password", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_ConfirmEmail(t *testing.T) {
	confirmed := *testAccount
	confirmed.Confirmed = true

	tests := []struct {
		name           string
		accountID      string
		confirmFn      func(ctx context.Context, id uuid.UUID) (*Account, error)
		expectedStatus int
	}{
		{
			name:      "success - email confirmed",
			accountID: testAccount.ID.String(),
			confirmFn: func(ctx context.Context, id uuid.UUID) (*Account, error) {
				return &confirmed, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "not found - unknown account",
			accountID: uuid.NewString(),
			confirmFn: func(ctx context.Context, id uuid.UUID) (*Account, error) {
				return nil, ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - malformed id",
			accountID:      "not-a-uuid",
			confirmFn:      nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockStore{confirmEmailFn: tt.confirmFn}, &fakeLimiter{})
			w := doRequest(router, http.MethodPost, "/accounts/"+tt.accountID+"/confirm", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_SetTwoFactor(t *testing.T) {
	tests := []struct {
		name           string
		accountID      string
		body           any
		setFn          func(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error)
		expectedStatus int
	}{
		{
			name:      "success - config replaced",
			accountID: testAccount.ID.String(),
			body:      map[string]any{"enabled": true, "secret": "s3cret", "verified": false},
			setFn: func(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error) {
				acct := *testAccount
				acct.TwoFactor = config
				return &acct, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "not found - unknown account",
			accountID: uuid.NewString(),
			body:      map[string]any{"enabled": true},
			setFn: func(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error) {
				return nil, ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - malformed id",
			accountID:      "nope",
			body:           map[string]any{"enabled": true},
			setFn:          nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockStore{setTwoFactorFn: tt.setFn}, &fakeLimiter{})
			w := doRequest(router, http.MethodPut, "/accounts/"+tt.accountID+"/two-factor", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		removeFn       func(ctx context.Context, login Credentials) (*Account, error)
		expectedStatus int
	}{
		{
			name: "success - account removed",
			body: map[string]string{"email": "a@x.com", "username": "a"},
			removeFn: func(ctx context.Context, login Credentials) (*Account, error) {
				return testAccount, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - already removed",
			body: map[string]string{"email": "a@x.com", "username": "a"},
			removeFn: func(ctx context.Context, login Credentials) (*Account, error) {
				return nil, ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "bad request - no credential supplied",
			body: map[string]string{},
			removeFn: func(ctx context.Context, login Credentials) (*Account, error) {
				return nil, ErrCredentialsRequired
			},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockStore{removeFn: tt.removeFn}, &fakeLimiter{})
			w := doRequest(router, http.MethodDelete, "/accounts", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_GetByID(t *testing.T) {
	banned := true
	bannedAccount := *testAccount
	bannedAccount.Banned = &banned

	tests := []struct {
		name           string
		accountID      string
		findFn         func(ctx context.Context, id uuid.UUID) (*Account, error)
		expectedStatus int
	}{
		{
			name:      "success - banned accounts are still retrievable by id",
			accountID: testAccount.ID.String(),
			findFn: func(ctx context.Context, id uuid.UUID) (*Account, error) {
				return &bannedAccount, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "not found - unknown account",
			accountID: uuid.NewString(),
			findFn: func(ctx context.Context, id uuid.UUID) (*Account, error) {
				return nil, ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - malformed id",
			accountID:      "42",
			findFn:         nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockStore{findByIDFn: tt.findFn}, &fakeLimiter{})
			w := doRequest(router, http.MethodGet, "/accounts/"+tt.accountID, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandler_List(t *testing.T) {
	router := newTestRouter(&mockStore{
		findAllFn: func(ctx context.Context) ([]*Account, error) {
			return []*Account{testAccount}, nil
		},
	}, &fakeLimiter{})

	w := doRequest(router, http.MethodGet, "/accounts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}

	var got []*Account
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Email != "a@x.com" {
		t.Fatalf("unexpected response: %+v", got)
	}
}
