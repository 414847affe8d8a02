package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot adapts the Telegram transport for the handlers: long-poll updates in,
// text replies out. It carries no conversation state of its own.
type Bot struct {
	API *tgbotapi.BotAPI
}

func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	zap.L().Info("authorized on telegram", zap.String("account", api.Self.UserName))

	return &Bot{API: api}, nil
}

func (b *Bot) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.API.Send(msg)
	return err
}

// SendLocationRequest sends text with a one-time reply keyboard whose single
// button asks the client to share its location.
func (b *Bot) SendLocationRequest(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)

	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("📍 Bagikan lokasi"),
		),
	)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	msg.ReplyMarkup = keyboard

	_, err := b.API.Send(msg)
	return err
}

// Updates opens the long-poll update channel.
func (b *Bot) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return b.API.GetUpdatesChan(u)
}

func (b *Bot) Stop() {
	b.API.StopReceivingUpdates()
}
