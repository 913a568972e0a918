// Package notify pushes out-of-band warehouse alerts to Telegram.
// Alerts are best-effort: a delivery failure is logged and never fed
// back into the ledger result.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

// NewTelegram returns nil when no token is configured, which disables
// alerting; callers treat a nil notifier as "off".
func NewTelegram(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: bot, chatID: chatID, log: log}, nil
}

// CriticalStock tells the admin chat a part dropped to or below its
// reorder threshold.
func (t *Telegram) CriticalStock(ctx context.Context, sku, name string, stockQty, minStock int64) {
	if t == nil {
		return
	}
	text := fmt.Sprintf("⚠️ Stok kritis: %s — %s\nSisa: %d (min %d)", sku, name, stockQty, minStock)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.log.Warn("critical stock alert failed", "sku", sku, "err", err)
	}
}
