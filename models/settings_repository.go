package models

import (
	"context"

	"github.com/lankamart/storefront/store"
)

// SettingsRepository holds the payment and notification singletons.
type SettingsRepository struct {
	payment      *document[PaymentInfo]
	notification *document[NotificationConfig]
}

// NewSettingsRepository loads both singletons; notification falls back to
// defaultNotification, which usually comes from the environment.
func NewSettingsRepository(ctx context.Context, st *store.Store, defaultNotification NotificationConfig) *SettingsRepository {
	return &SettingsRepository{
		payment:      loadDocument(ctx, st, store.KeyPaymentConfig, DefaultPaymentInfo()),
		notification: loadDocument(ctx, st, store.KeyNotificationConfig, defaultNotification),
	}
}

func (r *SettingsRepository) Payment() PaymentInfo {
	return r.payment.get()
}

func (r *SettingsRepository) SetPayment(ctx context.Context, info PaymentInfo) error {
	return r.payment.update(ctx, func(PaymentInfo) (PaymentInfo, error) { return info, nil })
}

func (r *SettingsRepository) Notification() NotificationConfig {
	return r.notification.get()
}

func (r *SettingsRepository) SetNotification(ctx context.Context, cfg NotificationConfig) error {
	return r.notification.update(ctx, func(NotificationConfig) (NotificationConfig, error) { return cfg, nil })
}
