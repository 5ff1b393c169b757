package account

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// ---- mock store ----

type mockStore struct {
	insertFn            func(ctx context.Context, signup Signup) (*Account, error)
	findByCredentialsFn func(ctx context.Context, login Credentials) (*Account, error)
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*Account, error)
	updatePasswordFn    func(ctx context.Context, email, newPassword string) (*Account, error)
	confirmEmailFn      func(ctx context.Context, id uuid.UUID) (*Account, error)
	setTwoFactorFn      func(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error)
	removeFn            func(ctx context.Context, login Credentials) (*Account, error)
	findAllFn           func(ctx context.Context) ([]*Account, error)
}

func (m *mockStore) Insert(ctx context.Context, signup Signup) (*Account, error) {
	return m.insertFn(ctx, signup)
}
func (m *mockStore) FindByCredentials(ctx context.Context, login Credentials) (*Account, error) {
	return m.findByCredentialsFn(ctx, login)
}
func (m *mockStore) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockStore) UpdatePassword(ctx context.Context, email, newPassword string) (*Account, error) {
	return m.updatePasswordFn(ctx, email, newPassword)
}
func (m *mockStore) ConfirmEmail(ctx context.Context, id uuid.UUID) (*Account, error) {
	return m.confirmEmailFn(ctx, id)
}
func (m *mockStore) SetTwoFactor(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error) {
	return m.setTwoFactorFn(ctx, id, config)
}
func (m *mockStore) Remove(ctx context.Context, login Credentials) (*Account, error) {
	return m.removeFn(ctx, login)
}
func (m *mockStore) FindAll(ctx context.Context) ([]*Account, error) {
	return m.findAllFn(ctx)
}

// The bun-backed store satisfies the service's contract.
var _ AccountStore = (*Store)(nil)

// ---- tests ----

func TestService_Create_ForwardsArgumentsAndResult(t *testing.T) {
	t.Parallel()

	want := &Account{ID: uuid.New(), Email: "a@x.com", Username: "a", Role: RoleUser}
	var gotSignup Signup

	svc := NewService(&mockStore{
		insertFn: func(ctx context.Context, signup Signup) (*Account, error) {
			gotSignup = signup
			return want, nil
		},
	})

	got, err := svc.Create(context.Background(), Signup{Email: "a@x.com", Username: "a", Password: "pw123456"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got != want {
		t.Fatal("Create did not return the store's account unchanged")
	}
	if gotSignup.Email != "a@x.com" || gotSignup.Username != "a" || gotSignup.Password != "pw123456" {
		t.Fatalf("Create forwarded wrong signup: %+v", gotSignup)
	}
}

func TestService_ErrorsPropagateVerbatim(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("storage exploded")
	store := &mockStore{
		insertFn: func(ctx context.Context, signup Signup) (*Account, error) {
			return nil, storeErr
		},
		findByCredentialsFn: func(ctx context.Context, login Credentials) (*Account, error) {
			return nil, ErrNotFound
		},
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*Account, error) {
			return nil, ErrNotFound
		},
		updatePasswordFn: func(ctx context.Context, email, newPassword string) (*Account, error) {
			return nil, storeErr
		},
		confirmEmailFn: func(ctx context.Context, id uuid.UUID) (*Account, error) {
			return nil, ErrNotFound
		},
		setTwoFactorFn: func(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error) {
			return nil, storeErr
		},
		removeFn: func(ctx context.Context, login Credentials) (*Account, error) {
			return nil, ErrNotFound
		},
		findAllFn: func(ctx context.Context) ([]*Account, error) {
			return nil, storeErr
		},
	}
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Signup{}); !errors.Is(err, storeErr) {
		t.Errorf("Create: expected the store error unchanged, got %v", err)
	}
	if _, err := svc.Find(ctx, Credentials{Email: "a@x.com"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.FindByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdatePassword(ctx, "a@x.com", "newpw789"); !errors.Is(err, storeErr) {
		t.Errorf("UpdatePassword: expected the store error unchanged, got %v", err)
	}
	if _, err := svc.ConfirmEmail(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("ConfirmEmail: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateTwoFactorAuth(ctx, uuid.New(), nil); !errors.Is(err, storeErr) {
		t.Errorf("UpdateTwoFactorAuth: expected the store error unchanged, got %v", err)
	}
	if _, err := svc.Delete(ctx, Credentials{Email: "a@x.com"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.List(ctx); !errors.Is(err, storeErr) {
		t.Errorf("List: expected the store error unchanged, got %v", err)
	}
}

func TestService_UpdateTwoFactorAuth_ForwardsConfigUntouched(t *testing.T) {
	t.Parallel()

	cfg := &TwoFactorConfig{Enabled: true, Secret: "topsecret", Verified: false, BackupCodes: []string{"c1", "c2"}}
	var gotCfg *TwoFactorConfig

	svc := NewService(&mockStore{
		setTwoFactorFn: func(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error) {
			gotCfg = config
			return &Account{ID: id, TwoFactor: config}, nil
		},
	})

	if _, err := svc.UpdateTwoFactorAuth(context.Background(), uuid.New(), cfg); err != nil {
		t.Fatalf("UpdateTwoFactorAuth returned error: %v", err)
	}
	if gotCfg != cfg {
		t.Fatal("expected the exact config pointer to be forwarded, not a copy")
	}
}
