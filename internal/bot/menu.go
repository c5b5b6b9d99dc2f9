package bot

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func sendWithMenu(ctx context.Context, s Sender, chatID int64, text string) error {
	_, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: buildMainKeyboard(),
	})
	return err
}

func buildMainKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "/paralelo"}, {Text: "/oficial"}},
			{{Text: "/start"}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: false,
	}
}
