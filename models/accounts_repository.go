package models

import (
	"context"
	"errors"
	"slices"

	"github.com/lankamart/storefront/store"
)

// ErrAccountNotFound is returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountsRepository keeps accounts in registration order. Usernames are not
// unique.
type AccountsRepository struct {
	doc *document[[]UserAccount]
}

func NewAccountsRepository(ctx context.Context, st *store.Store) *AccountsRepository {
	return &AccountsRepository{
		doc: loadDocument(ctx, st, store.KeyAccounts, []UserAccount{}),
	}
}

func (r *AccountsRepository) GetAllAccounts() []UserAccount {
	return slices.Clone(r.doc.get())
}

func (r *AccountsRepository) Count() int {
	return len(r.doc.get())
}

func (r *AccountsRepository) Append(ctx context.Context, account UserAccount) error {
	return r.doc.update(ctx, func(accounts []UserAccount) ([]UserAccount, error) {
		return append(slices.Clone(accounts), account), nil
	})
}

// FindByCredentials returns the first account, in storage order, whose
// username and password both match exactly.
func (r *AccountsRepository) FindByCredentials(username, password string) (*UserAccount, bool) {
	for _, a := range r.doc.get() {
		if a.Username == username && a.Password == password {
			account := a
			return &account, true
		}
	}
	return nil, false
}

func (r *AccountsRepository) SetRole(ctx context.Context, id string, role Role) (UserAccount, error) {
	var updated UserAccount
	err := r.doc.update(ctx, func(accounts []UserAccount) ([]UserAccount, error) {
		i := slices.IndexFunc(accounts, func(a UserAccount) bool { return a.ID == id })
		if i < 0 {
			return nil, ErrAccountNotFound
		}
		next := slices.Clone(accounts)
		next[i].Role = role
		updated = next[i]
		return next, nil
	})
	return updated, err
}
