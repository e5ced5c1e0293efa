package models

// PaymentInfo is shown to customers paying by bank transfer.
type PaymentInfo struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	QRURL         string `json:"qrUrl,omitempty"`
	Instruction   string `json:"instruction"`
}

// NotificationConfig points new-order notifications at a Telegram chat.
type NotificationConfig struct {
	BotToken  string `json:"botToken"`
	ChatID    string `json:"chatId"`
	IsEnabled bool   `json:"isEnabled"`
}

// Active reports whether notifications should be sent at all.
func (c NotificationConfig) Active() bool {
	return c.IsEnabled && c.BotToken != "" && c.ChatID != ""
}
