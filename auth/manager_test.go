package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lankamart/storefront/models"
	"github.com/lankamart/storefront/store"
)

type fixture struct {
	manager  *Manager
	accounts *models.AccountsRepository
	sessions *models.SessionRepository
	st       *store.Store
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	ctx := context.Background()
	st := store.New(store.NewMemoryBackend(), zap.NewNop())
	accounts := models.NewAccountsRepository(ctx, st)
	sessions := models.NewSessionRepository(ctx, st)
	opts = append([]Option{WithClock(func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) })}, opts...)
	return fixture{
		manager:  NewManager(accounts, sessions, zap.NewNop(), opts...),
		accounts: accounts,
		sessions: sessions,
		st:       st,
	}
}

func TestAuthenticateBuiltInAdmin(t *testing.T) {
	f := newFixture(t)
	require.Empty(t, f.accounts.GetAllAccounts())

	account, err := f.manager.Authenticate(context.Background(), "admin", DefaultAdminPassword)

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)
	assert.True(t, f.manager.HasRole(models.RoleAdmin))
	assert.Empty(t, f.accounts.GetAllAccounts(), "admin never touches the accounts collection")
}

func TestAuthenticateConfiguredAdmin(t *testing.T) {
	f := newFixture(t, WithAdmin(Credentials{Username: "boss", Password: "s3cret"}))

	_, err := f.manager.Authenticate(context.Background(), "admin", DefaultAdminPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	account, err := f.manager.Authenticate(context.Background(), "boss", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)
}

func TestAuthenticateStoredAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.manager.Register(ctx, Registration{Username: "lan", Password: "pw", FullName: "Nguyễn Lan"})
	require.NoError(t, err)
	require.NoError(t, f.manager.Logout(ctx))
	assert.Nil(t, f.manager.Current())

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{name: "match", username: "lan", password: "pw"},
		{name: "wrong password", username: "lan", password: "nope", wantErr: true},
		{name: "unknown user", username: "minh", password: "pw", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			account, err := f.manager.Authenticate(ctx, tc.username, tc.password)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Nguyễn Lan", account.FullName)
			assert.Equal(t, account.ID, f.manager.Current().ID)
		})
	}
}

func TestRegisterAllowsDuplicateUsernames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.manager.Register(ctx, Registration{Username: "lan", Password: "pw", FullName: "First"})
	require.NoError(t, err)
	second, err := f.manager.Register(ctx, Registration{Username: "lan", Password: "pw", FullName: "Second"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.RoleUser, second.Role)
	assert.Equal(t, second.ID, f.manager.Current().ID, "registration signs the new account in")

	reloaded := models.NewAccountsRepository(ctx, f.st)
	assert.Len(t, reloaded.GetAllAccounts(), 2)

	account, err := f.manager.Authenticate(ctx, "lan", "pw")
	require.NoError(t, err)
	assert.Equal(t, first.ID, account.ID)
	assert.Equal(t, "First", account.FullName)
}

func TestSetRoleUpdatesActiveSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account, err := f.manager.Register(ctx, Registration{Username: "minh", Password: "pw"})
	require.NoError(t, err)

	updated, err := f.manager.SetRole(ctx, account.ID, models.RoleShipper)

	require.NoError(t, err)
	assert.Equal(t, models.RoleShipper, updated.Role)
	assert.Equal(t, models.RoleShipper, f.manager.Current().Role)
	assert.Equal(t, models.RoleShipper, models.NewSessionRepository(ctx, f.st).Current().Role)
}

func TestSetRoleOtherAccountLeavesSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other, err := f.manager.Register(ctx, Registration{Username: "vendor"})
	require.NoError(t, err)
	_, err = f.manager.Authenticate(ctx, "admin", DefaultAdminPassword)
	require.NoError(t, err)

	_, err = f.manager.SetRole(ctx, other.ID, models.RoleVendor)
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, f.manager.Current().Role)
	assert.Equal(t, models.RoleVendor, f.manager.Accounts()[0].Role)

	_, err = f.manager.SetRole(ctx, "u-missing", models.RoleVendor)
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
}
