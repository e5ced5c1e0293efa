package models

import (
	"context"

	"github.com/lankamart/storefront/store"
)

// SessionRepository persists the single signed-in account, or none.
type SessionRepository struct {
	doc *document[*UserAccount]
}

func NewSessionRepository(ctx context.Context, st *store.Store) *SessionRepository {
	return &SessionRepository{
		doc: loadDocument[*UserAccount](ctx, st, store.KeySession, nil),
	}
}

// Current returns a copy of the signed-in account, or nil.
func (r *SessionRepository) Current() *UserAccount {
	current := r.doc.get()
	if current == nil {
		return nil
	}
	account := *current
	return &account
}

func (r *SessionRepository) Set(ctx context.Context, account *UserAccount) error {
	var stored *UserAccount
	if account != nil {
		copied := *account
		stored = &copied
	}
	return r.doc.update(ctx, func(*UserAccount) (*UserAccount, error) {
		return stored, nil
	})
}

// UpdateIf applies fn to the session when the signed-in account has id.
func (r *SessionRepository) UpdateIf(ctx context.Context, id string, fn func(*UserAccount)) error {
	return r.doc.update(ctx, func(current *UserAccount) (*UserAccount, error) {
		if current == nil || current.ID != id {
			return current, nil
		}
		next := *current
		fn(&next)
		return &next, nil
	})
}
