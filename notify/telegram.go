// Package notify tells the shop about new orders through a Telegram bot.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lankamart/storefront/currency"
	"github.com/lankamart/storefront/models"
)

const DefaultBaseURL = "https://api.telegram.org"

// ConfigSource provides the current notification settings; they are read on
// every send so edits apply immediately.
type ConfigSource interface {
	Notification() models.NotificationConfig
}

type Telegram struct {
	cfg     ConfigSource
	client  *http.Client
	baseURL string
	now     func() time.Time
}

type TelegramOption func(*Telegram)

func WithBaseURL(u string) TelegramOption {
	return func(t *Telegram) { t.baseURL = strings.TrimRight(u, "/") }
}

func WithClock(now func() time.Time) TelegramOption {
	return func(t *Telegram) { t.now = now }
}

func NewTelegram(cfg ConfigSource, client *http.Client, opts ...TelegramOption) *Telegram {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	t := &Telegram{
		cfg:     cfg,
		client:  client,
		baseURL: DefaultBaseURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Notify posts the formatted order to the configured chat. It does nothing
// when notifications are disabled or the bot token or chat ID is blank.
func (t *Telegram) Notify(ctx context.Context, order models.Order) error {
	cfg := t.cfg.Notification()
	if !cfg.Active() {
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    cfg.ChatID,
		Text:      FormatMessage(order, t.now()),
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send message: telegram answered %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}

const (
	unknownArea = "Không xác định"
	// time then day/month/year, as the shop's Vietnamese locale prints it
	sentAtLayout = "15:04:05 2/1/2006"
)

// FormatMessage renders an order as Vietnamese Telegram HTML for the shop.
func FormatMessage(order models.Order, sentAt time.Time) string {
	var b strings.Builder

	b.WriteString("<b>🔔 CÓ ĐƠN HÀNG MỚI!</b>\n\n")
	fmt.Fprintf(&b, "🆔 <b>Mã ĐH:</b> <code>%s</code>\n", html.EscapeString(order.ID))
	fmt.Fprintf(&b, "👤 <b>Khách hàng:</b> %s\n", html.EscapeString(order.CustomerName))
	fmt.Fprintf(&b, "📱 <b>Liên hệ:</b> %s\n", html.EscapeString(order.Contact))

	if order.Type == models.OrderTypeCustom {
		area := order.Address
		if area == "" {
			area = unknownArea
		}
		b.WriteString("🚩 <b>Loại:</b> GIAO HÀNG THEO YÊU CẦU\n")
		fmt.Fprintf(&b, "📍 <b>Khu vực:</b> %s\n", html.EscapeString(area))
		fmt.Fprintf(&b, "💬 <b>Yêu cầu:</b> <i>%s</i>\n", html.EscapeString(order.Note))
	} else {
		b.WriteString("🛒 <b>Loại:</b> ĐƠN GIỎ HÀNG\n")
		b.WriteString("📦 <b>Sản phẩm:</b>\n")
		for i, item := range order.Items {
			fmt.Fprintf(&b, "%d. %s (x%d)\n", i+1, html.EscapeString(item.Name.Get(models.DefaultLanguage)), item.Quantity)
		}
		fmt.Fprintf(&b, "💰 <b>Tổng:</b> <code>%s %s</code> (≈ %s %s)\n",
			currency.FormatSource(order.Total), currency.Source,
			currency.FormatTarget(currency.Default.Forward(order.Total)), currency.Target)
	}

	if order.Location != nil {
		fmt.Fprintf(&b, "\n📍 <b>Vị trí GPS:</b> <a href=\"%s\">Mở Bản Đồ</a>\n", order.Location.MapURL())
	}
	fmt.Fprintf(&b, "\n⏰ <i>Gửi lúc: %s</i>", sentAt.Format(sentAtLayout))

	return b.String()
}
