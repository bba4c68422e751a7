package telegram

import (
	"context"
	"errors"

	"subscription-storefront/internal/config"
	"subscription-storefront/internal/domain/ports/adapter"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes activity messages to a fixed admin chat. It never reads
// updates; the bot is used purely as an outbound channel.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var _ adapter.Notifier = (*Notifier)(nil)

func NewNotifier(cfg *config.TelegramConfig) (*Notifier, error) {
	if cfg == nil || cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("telegram chat_id is required")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot, chatID: cfg.ChatID}, nil
}

func (n *Notifier) Send(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	_, err := n.bot.Send(msg)
	return err
}
