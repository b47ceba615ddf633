package delivery

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender posts plain-text messages through the Bot API.
type TelegramSender struct {
	Bot *tgbotapi.BotAPI
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Authorized on Telegram account %s", bot.Self.UserName)
	return &TelegramSender{Bot: bot}, nil
}

func (s *TelegramSender) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	_, err := s.Bot.Send(msg)
	return err
}

// LogSender stands in when no bot token is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, chatID int64, text string) error {
	log.Printf("[notify-svc] to chat %d:\n%s", chatID, text)
	return nil
}
