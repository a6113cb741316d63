package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"cekkuota-bot/internal/config"
	"cekkuota-bot/internal/domain/model"
	"cekkuota-bot/internal/domain/ports/adapter"
	"cekkuota-bot/internal/infra/metrics"
)

// Compile-time check
var _ adapter.Messenger = (*Bot)(nil)

// Bot implements the Messenger port on the Telegram Bot API. Updates are
// fetched with explicit offsets; the library's channel-based poller would
// own the offset itself and bypass the durable cursor.
type Bot struct {
	api *tgbotapi.BotAPI
	log *zerolog.Logger
}

func NewBot(cfg *config.BotConfig, logger *zerolog.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("bot token is empty")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, log: logger}, nil
}

func (b *Bot) SendText(ctx context.Context, chatID string, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return errors.New("chat id is not numeric: " + chatID)
	}
	msg := tgbotapi.NewMessage(id, Truncate(text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		metrics.IncMessageSendError()
		return err
	}
	metrics.IncMessageSent()
	return nil
}

// FetchUpdates long-polls getUpdates. The in-flight HTTP call is not
// separately cancellable; it completes or times out on its own.
func (b *Bot) FetchUpdates(ctx context.Context, offset int64, waitSeconds int) ([]model.Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := tgbotapi.NewUpdate(int(offset))
	u.Timeout = waitSeconds
	raw, err := b.api.GetUpdates(u)
	if err != nil {
		return nil, err
	}

	updates := make([]model.Update, 0, len(raw))
	for _, upd := range raw {
		updates = append(updates, mapUpdate(upd))
	}
	return updates, nil
}

// LatestUpdateID asks for the single most recent update without consuming
// anything: offset -1, limit 1.
func (b *Bot) LatestUpdateID(ctx context.Context) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	u := tgbotapi.NewUpdate(-1)
	u.Limit = 1
	raw, err := b.api.GetUpdates(u)
	if err != nil {
		return 0, false, err
	}
	if len(raw) == 0 {
		return 0, false, nil
	}
	return int64(raw[len(raw)-1].UpdateID), true, nil
}

func (b *Bot) ClearWebhook(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}

func mapUpdate(upd tgbotapi.Update) model.Update {
	out := model.Update{UpdateID: int64(upd.UpdateID)}
	msg := upd.Message
	if msg == nil {
		msg = upd.EditedMessage
	}
	if msg == nil {
		return out
	}
	if msg.Chat != nil {
		out.ChatID = strconv.FormatInt(msg.Chat.ID, 10)
	}
	out.Text = msg.Text
	return out
}
