// Package auth signs shoppers in against the locally stored accounts and
// keeps the single current session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lankamart/storefront/models"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "590945"

	adminID       = "admin"
	adminFullName = "QUẢN TRỊ VIÊN"
)

// ErrInvalidCredentials is returned for any failed sign-in; it does not say
// whether the username exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Accounts interface {
	Append(ctx context.Context, account models.UserAccount) error
	FindByCredentials(username, password string) (*models.UserAccount, bool)
	SetRole(ctx context.Context, id string, role models.Role) (models.UserAccount, error)
	GetAllAccounts() []models.UserAccount
}

type Sessions interface {
	Current() *models.UserAccount
	Set(ctx context.Context, account *models.UserAccount) error
	UpdateIf(ctx context.Context, id string, fn func(*models.UserAccount)) error
}

// Credentials is a username and password pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the sign-up form.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type Manager struct {
	accounts Accounts
	sessions Sessions
	admin    Credentials
	ids      *models.IDGenerator
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Manager)

// WithAdmin replaces the built-in administrator credentials.
func WithAdmin(c Credentials) Option {
	return func(m *Manager) { m.admin = c }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
		m.ids.Now = now
	}
}

func NewManager(accounts Accounts, sessions Sessions, log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		accounts: accounts,
		sessions: sessions,
		admin:    Credentials{Username: DefaultAdminUsername, Password: DefaultAdminPassword},
		ids:      &models.IDGenerator{Now: time.Now},
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authenticate signs in. The built-in administrator is checked first and
// never looked up in the accounts collection; otherwise the first stored
// account with this exact username and password wins.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (models.UserAccount, error) {
	var account models.UserAccount
	switch {
	case m.admin.Username != "" && username == m.admin.Username && password == m.admin.Password:
		account = models.UserAccount{
			ID:        adminID,
			Username:  m.admin.Username,
			FullName:  adminFullName,
			Role:      models.RoleAdmin,
			CreatedAt: m.now().UTC(),
		}
	default:
		found, ok := m.accounts.FindByCredentials(username, password)
		if !ok {
			m.log.Info("sign-in refused", zap.String("username", username))
			return models.UserAccount{}, ErrInvalidCredentials
		}
		account = *found
	}

	if err := m.sessions.Set(ctx, &account); err != nil {
		return models.UserAccount{}, fmt.Errorf("start session: %w", err)
	}
	return account, nil
}

// Register appends a new user account and signs it in. Usernames are not
// checked for uniqueness.
func (m *Manager) Register(ctx context.Context, r Registration) (models.UserAccount, error) {
	account := models.UserAccount{
		ID:        m.ids.Next("u"),
		Username:  r.Username,
		Password:  r.Password,
		FullName:  r.FullName,
		Phone:     r.Phone,
		Role:      models.RoleUser,
		CreatedAt: m.now().UTC(),
	}
	if err := m.accounts.Append(ctx, account); err != nil {
		return models.UserAccount{}, fmt.Errorf("store account: %w", err)
	}
	if err := m.sessions.Set(ctx, &account); err != nil {
		return models.UserAccount{}, fmt.Errorf("start session: %w", err)
	}
	m.log.Info("account registered", zap.String("id", account.ID), zap.String("username", account.Username))
	return account, nil
}

// SetRole changes an account's role. The current session follows when it
// belongs to that account.
func (m *Manager) SetRole(ctx context.Context, id string, role models.Role) (models.UserAccount, error) {
	updated, err := m.accounts.SetRole(ctx, id, role)
	if err != nil {
		return models.UserAccount{}, err
	}
	if err := m.sessions.UpdateIf(ctx, id, func(a *models.UserAccount) { a.Role = role }); err != nil {
		return models.UserAccount{}, fmt.Errorf("update session: %w", err)
	}
	return updated, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	return m.sessions.Set(ctx, nil)
}

// Current returns the signed-in account, or nil.
func (m *Manager) Current() *models.UserAccount {
	return m.sessions.Current()
}

func (m *Manager) HasRole(role models.Role) bool {
	current := m.sessions.Current()
	return current != nil && current.Role == role
}

func (m *Manager) Accounts() []models.UserAccount {
	return m.accounts.GetAllAccounts()
}
