package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/microblog/backend/internal/errs"
	"github.com/ayush/microblog/backend/internal/models"
)

// fakeAccountStore is an in-memory AccountStore with per-method failure
// switches, used by the service and handler tests.
type fakeAccountStore struct {
	accounts   map[int64]models.Account
	nextID     int64
	failLookup bool
	failInsert bool
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[int64]models.Account{}}
}

func (f *fakeAccountStore) CreateAccount(_ context.Context, username, password string) (*models.Account, error) {
	if f.failInsert {
		return nil, errors.New("store down")
	}
	f.nextID++
	a := models.Account{ID: f.nextID, Username: username, Password: password}
	f.accounts[a.ID] = a
	return &a, nil
}

func (f *fakeAccountStore) GetAccountByUsername(_ context.Context, username string) (*models.Account, error) {
	if f.failLookup {
		return nil, errors.New("store down")
	}
	for _, a := range f.accounts {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) GetAccountByCredentials(_ context.Context, username, password string) (*models.Account, error) {
	if f.failLookup {
		return nil, errors.New("store down")
	}
	for _, a := range f.accounts {
		if a.Username == username && a.Password == password {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) GetAccountByID(_ context.Context, id int64) (*models.Account, error) {
	if f.failLookup {
		return nil, errors.New("store down")
	}
	if a, ok := f.accounts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func rejectionReason(t *testing.T, err error) errs.Reason {
	t.Helper()
	var rej *errs.Rejection
	require.ErrorAs(t, err, &rej)
	return rej.Reason
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		reason   errs.Reason
	}{
		{"password too short", "bob", "abc", errs.ReasonPasswordTooShort},
		{"empty username", "", "abcd", errs.ReasonUsernameEmpty},
		// Password length is checked before the username, so a candidate
		// failing both reports the password.
		{"both invalid reports password first", "", "abc", errs.ReasonPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeAccountStore()
			svc := NewService(store, zerolog.Nop())

			account, err := svc.Register(context.Background(), tt.username, tt.password)
			assert.Nil(t, account)
			assert.Equal(t, tt.reason, rejectionReason(t, err))
			assert.Empty(t, store.accounts, "nothing may be written on rejection")
		})
	}
}

func TestRegisterSucceedsOnce(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewService(store, zerolog.Nop())

	account, err := svc.Register(context.Background(), "bob", "abcd")
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, "bob", account.Username)
	assert.Equal(t, "abcd", account.Password)

	// Same username again, any password.
	dup, err := svc.Register(context.Background(), "bob", "other-password")
	assert.Nil(t, dup)
	assert.Equal(t, errs.ReasonUsernameTaken, rejectionReason(t, err))
	assert.Len(t, store.accounts, 1)
}

func TestRegisterStoreFailures(t *testing.T) {
	t.Run("failed uniqueness lookup reads as no match", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := NewService(store, zerolog.Nop())
		store.failLookup = true

		account, err := svc.Register(context.Background(), "bob", "abcd")
		require.NoError(t, err)
		assert.Equal(t, int64(1), account.ID)
	})

	t.Run("failed insert degrades to rejection", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := NewService(store, zerolog.Nop())
		store.failInsert = true

		account, err := svc.Register(context.Background(), "bob", "abcd")
		assert.Nil(t, account)
		assert.Equal(t, errs.ReasonNotPersisted, rejectionReason(t, err))
	})
}

func TestLogin(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewService(store, zerolog.Nop())

	registered, err := svc.Register(context.Background(), "bob", "abcd")
	require.NoError(t, err)

	t.Run("matching credentials", func(t *testing.T) {
		account, err := svc.Login(context.Background(), "bob", "abcd")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		account, err := svc.Login(context.Background(), "bob", "wrong")
		assert.Nil(t, account)
		assert.Equal(t, errs.ReasonBadCredentials, rejectionReason(t, err))
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "Bob", "abcd")
		assert.True(t, errs.IsRejection(err))
	})

	t.Run("store failure reads as bad credentials", func(t *testing.T) {
		store.failLookup = true
		defer func() { store.failLookup = false }()
		_, err := svc.Login(context.Background(), "bob", "abcd")
		assert.Equal(t, errs.ReasonBadCredentials, rejectionReason(t, err))
	})
}

func TestExists(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewService(store, zerolog.Nop())

	registered, err := svc.Register(context.Background(), "bob", "abcd")
	require.NoError(t, err)

	assert.True(t, svc.Exists(context.Background(), registered.ID))
	assert.False(t, svc.Exists(context.Background(), registered.ID+1))

	store.failLookup = true
	assert.False(t, svc.Exists(context.Background(), registered.ID))
}
