package inline

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"
)

var ErrInvalidButton = errors.New("invalid inline keyboard button")

// InlineKeyboardMarkup is the keyboard attached to the message a result sends.
type InlineKeyboardMarkup struct {
	tgbotapi.InlineKeyboardMarkup
}

func NewInlineKeyboardMarkup(rows ...[]tgbotapi.InlineKeyboardButton) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboardMarkup: tgbotapi.NewInlineKeyboardMarkup(rows...)}
}

func (m *InlineKeyboardMarkup) Write(_ context.Context, _ Client) (*tg.ReplyInlineMarkup, error) {
	out := &tg.ReplyInlineMarkup{}
	for i, row := range m.InlineKeyboard {
		var buttons []tg.KeyboardButtonClass
		for j, b := range row {
			button, err := writeButton(b)
			if err != nil {
				return nil, errors.Wrapf(err, "button [%d][%d] %q", i, j, b.Text)
			}
			buttons = append(buttons, button)
		}
		out.Rows = append(out.Rows, tg.KeyboardButtonRow{Buttons: buttons})
	}
	return out, nil
}

func writeButton(b tgbotapi.InlineKeyboardButton) (tg.KeyboardButtonClass, error) {
	switch {
	case b.URL != nil:
		return &tg.KeyboardButtonURL{Text: b.Text, URL: *b.URL}, nil
	case b.CallbackData != nil:
		return &tg.KeyboardButtonCallback{Text: b.Text, Data: []byte(*b.CallbackData)}, nil
	case b.SwitchInlineQuery != nil:
		return &tg.KeyboardButtonSwitchInline{Text: b.Text, Query: *b.SwitchInlineQuery}, nil
	case b.SwitchInlineQueryCurrentChat != nil:
		return &tg.KeyboardButtonSwitchInline{SamePeer: true, Text: b.Text, Query: *b.SwitchInlineQueryCurrentChat}, nil
	case b.CallbackGame != nil:
		return &tg.KeyboardButtonGame{Text: b.Text}, nil
	case b.Pay:
		return &tg.KeyboardButtonBuy{Text: b.Text}, nil
	}
	return nil, ErrInvalidButton
}
