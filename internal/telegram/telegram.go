// Package telegram connects the chat handler to the Telegram Bot API.
package telegram

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/safar/partsbot/internal/chat"
	"github.com/safar/partsbot/internal/models"
	"go.uber.org/zap"
)

type Dispatcher interface {
	Handle(ctx context.Context, in chat.Incoming) error
}

// Bot long-polls for updates and implements chat.Sender.
type Bot struct {
	api        *bot.Bot
	log        *zap.Logger
	dispatcher Dispatcher
}

func New(token string, log *zap.Logger, opts ...bot.Option) (*Bot, error) {
	b := &Bot{log: log.Named("telegram")}

	opts = append([]bot.Option{
		bot.WithDefaultHandler(b.onUpdate),
		bot.WithErrorsHandler(func(err error) {
			b.log.Error("Bot API error", zap.Error(err))
		}),
	}, opts...)

	api, err := bot.New(token, opts...)
	if err != nil {
		return nil, err
	}
	b.api = api

	return b, nil
}

// Run delivers updates to d until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, d Dispatcher) error {
	if d == nil {
		return errors.New("telegram: nil dispatcher")
	}
	b.dispatcher = d

	b.log.Info("Polling for updates")
	b.api.Start(ctx)
	b.log.Info("Polling stopped")
	return nil
}

func (b *Bot) Send(ctx context.Context, reply chat.Reply) error {
	_, err := b.api.SendMessage(ctx, sendParams(reply))
	return err
}

func (b *Bot) onUpdate(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	in, ok := toIncoming(update)
	if !ok {
		return
	}

	if err := b.dispatcher.Handle(ctx, in); err != nil {
		b.log.Error("Failed to deliver reply",
			zap.Int64("chat_id", in.ChatID),
			zap.Int64("user_id", in.User.ExternalID),
			zap.Error(err),
		)
	}
}

// toIncoming ignores updates that are not user messages.
func toIncoming(update *tgmodels.Update) (chat.Incoming, bool) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return chat.Incoming{}, false
	}

	msg := update.Message
	in := chat.Incoming{
		ChatID: msg.Chat.ID,
		User: models.Identity{
			ExternalID: msg.From.ID,
			Username:   msg.From.Username,
			FirstName:  msg.From.FirstName,
			LastName:   msg.From.LastName,
		},
		Text: msg.Text,
	}
	if msg.WebAppData != nil {
		in.WebAppData = msg.WebAppData.Data
	}

	if in.Text == "" && in.WebAppData == "" {
		return chat.Incoming{}, false
	}
	return in, true
}

func sendParams(reply chat.Reply) *bot.SendMessageParams {
	params := &bot.SendMessageParams{
		ChatID: reply.ChatID,
		Text:   reply.Text,
	}
	if reply.Markdown {
		params.ParseMode = tgmodels.ParseModeMarkdownV1
	}
	if reply.Keyboard != nil {
		params.ReplyMarkup = replyMarkup(reply.Keyboard)
	}
	return params
}

func replyMarkup(kb *chat.Keyboard) tgmodels.ReplyMarkup {
	if kb.Inline {
		rows := make([][]tgmodels.InlineKeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]tgmodels.InlineKeyboardButton, 0, len(row))
			for _, btn := range row {
				button := tgmodels.InlineKeyboardButton{Text: btn.Text}
				if btn.WebAppURL != "" {
					button.WebApp = &tgmodels.WebAppInfo{URL: btn.WebAppURL}
				} else {
					button.CallbackData = btn.Text
				}
				buttons = append(buttons, button)
			}
			rows = append(rows, buttons)
		}
		return &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows}
	}

	rows := make([][]tgmodels.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgmodels.KeyboardButton, 0, len(row))
		for _, btn := range row {
			button := tgmodels.KeyboardButton{Text: btn.Text}
			if btn.WebAppURL != "" {
				button.WebApp = &tgmodels.WebAppInfo{URL: btn.WebAppURL}
			}
			buttons = append(buttons, button)
		}
		rows = append(rows, buttons)
	}
	return &tgmodels.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}
