package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Key names one persisted document.
type Key string

const (
	KeyAccounts           Key = "accounts"
	KeySession            Key = "current_session"
	KeyProducts           Key = "products"
	KeyOrders             Key = "orders"
	KeyCategories         Key = "categories"
	KeyPaymentConfig      Key = "payment_config"
	KeyNotificationConfig Key = "notification_config"
)

// Backend reads and writes raw documents.
type Backend interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Put(ctx context.Context, key Key, body []byte) error
	Close() error
}

// Store persists JSON documents by key on top of a Backend.
type Store struct {
	backend Backend
	log     *zap.Logger
}

func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		backend: backend,
		log:     log,
	}
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load decodes the document stored under key into a T. A missing, unreadable or
// corrupt document yields def; the failure is logged and never returned.
func Load[T any](ctx context.Context, s *Store, key Key, def T) T {
	body, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn("document read failed, using default", zap.String("key", string(key)), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		s.log.Warn("document decode failed, using default", zap.String("key", string(key)), zap.Error(err))
		return def
	}
	return v
}

// Save overwrites the document under key with the JSON encoding of v.
func Save[T any](ctx context.Context, s *Store, key Key, v T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Put(ctx, key, body); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
