package telegram

import (
	"testing"

	tgmodels "github.com/go-telegram/bot/models"
	"github.com/safar/partsbot/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIncoming(t *testing.T) {
	t.Run("text message", func(t *testing.T) {
		in, ok := toIncoming(&tgmodels.Update{Message: &tgmodels.Message{
			Chat: tgmodels.Chat{ID: 100},
			From: &tgmodels.User{ID: 42, Username: "tom", FirstName: "Thomas", LastName: "A."},
			Text: "/start",
		}})
		require.True(t, ok)
		assert.Equal(t, int64(100), in.ChatID)
		assert.Equal(t, int64(42), in.User.ExternalID)
		assert.Equal(t, "tom", in.User.Username)
		assert.Equal(t, "/start", in.Text)
	})

	t.Run("web app data", func(t *testing.T) {
		in, ok := toIncoming(&tgmodels.Update{Message: &tgmodels.Message{
			Chat:       tgmodels.Chat{ID: 100},
			From:       &tgmodels.User{ID: 42},
			WebAppData: &tgmodels.WebAppData{Data: `{"action":"get_categories"}`},
		}})
		require.True(t, ok)
		assert.Equal(t, `{"action":"get_categories"}`, in.WebAppData)
	})

	t.Run("ignored updates", func(t *testing.T) {
		for _, update := range []*tgmodels.Update{
			nil,
			{},
			{Message: &tgmodels.Message{Chat: tgmodels.Chat{ID: 1}, Text: "anonymous"}},
			{Message: &tgmodels.Message{Chat: tgmodels.Chat{ID: 1}, From: &tgmodels.User{ID: 2}}},
		} {
			_, ok := toIncoming(update)
			assert.False(t, ok)
		}
	})
}

func TestSendParams(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		params := sendParams(chat.Reply{ChatID: 7, Text: "hi"})
		assert.Equal(t, int64(7), params.ChatID)
		assert.Empty(t, params.ParseMode)
		assert.Nil(t, params.ReplyMarkup)
	})

	t.Run("reply keyboard", func(t *testing.T) {
		params := sendParams(chat.Reply{
			ChatID:   7,
			Text:     "*menu*",
			Markdown: true,
			Keyboard: &chat.Keyboard{Rows: [][]chat.Button{
				{{Text: "Open", WebAppURL: "https://shop.example/"}},
				{{Text: "Help"}, {Text: "Top"}},
			}},
		})
		assert.Equal(t, tgmodels.ParseModeMarkdownV1, params.ParseMode)

		markup, ok := params.ReplyMarkup.(*tgmodels.ReplyKeyboardMarkup)
		require.True(t, ok)
		assert.True(t, markup.ResizeKeyboard)
		require.Len(t, markup.Keyboard, 2)
		require.NotNil(t, markup.Keyboard[0][0].WebApp)
		assert.Equal(t, "https://shop.example/", markup.Keyboard[0][0].WebApp.URL)
		assert.Nil(t, markup.Keyboard[1][0].WebApp)
		assert.Equal(t, "Top", markup.Keyboard[1][1].Text)
	})

	t.Run("inline keyboard", func(t *testing.T) {
		params := sendParams(chat.Reply{
			ChatID:   7,
			Keyboard: &chat.Keyboard{Inline: true, Rows: [][]chat.Button{{{Text: "Open", WebAppURL: "https://shop.example/"}}}},
		})

		markup, ok := params.ReplyMarkup.(*tgmodels.InlineKeyboardMarkup)
		require.True(t, ok)
		require.NotNil(t, markup.InlineKeyboard[0][0].WebApp)
		assert.Equal(t, "https://shop.example/", markup.InlineKeyboard[0][0].WebApp.URL)
	})
}
