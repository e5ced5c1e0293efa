package settings

import (
	"context"
	"net/http"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/models"
)

type SettingsProvider interface {
	Payment() models.PaymentInfo
	SetPayment(ctx context.Context, info models.PaymentInfo) error
	Notification() models.NotificationConfig
	SetNotification(ctx context.Context, cfg models.NotificationConfig) error
}

type SettingsHandler struct {
	repo SettingsProvider
}

func NewSettingsHandler(r SettingsProvider) *SettingsHandler {
	return &SettingsHandler{repo: r}
}

func (h *SettingsHandler) HandleGetPayment(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.repo.Payment())
}

func (h *SettingsHandler) HandlePutPayment(w http.ResponseWriter, r *http.Request) {
	var input models.PaymentInfo
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.BankName == "" || input.AccountNumber == "" {
		response.Error(w, http.StatusBadRequest, "Missing bank name or account number")
		return
	}
	if err := h.repo.SetPayment(r.Context(), input); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save payment info")
		return
	}
	response.OK(w, input)
}

func (h *SettingsHandler) HandleGetNotification(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.repo.Notification())
}

// HandlePutNotification stores the Telegram settings. Enabling it without a
// token and chat id is accepted; nothing is sent until both are set.
func (h *SettingsHandler) HandlePutNotification(w http.ResponseWriter, r *http.Request) {
	var input models.NotificationConfig
	if err := response.Decode(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.repo.SetNotification(r.Context(), input); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save notification settings")
		return
	}
	response.OK(w, input)
}
