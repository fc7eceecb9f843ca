package inline

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"

	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

// InputMessageContent is an alternate message body for a result.
type InputMessageContent interface {
	Write(ctx context.Context, c Client, markup *InlineKeyboardMarkup) (tg.InputBotInlineMessageClass, error)
}

// ErrNilMessageContent is returned when a nil *InputTextMessageContent is written.
var ErrNilMessageContent = errors.New("nil input message content")

// InputTextMessageContent sends a text message.
type InputTextMessageContent struct {
	MessageText           string
	ParseMode             parsemode.Option
	Entities              []tgbotapi.MessageEntity
	DisableWebPagePreview bool
}

func (t *InputTextMessageContent) Write(ctx context.Context, c Client, markup *InlineKeyboardMarkup) (tg.InputBotInlineMessageClass, error) {
	if t == nil {
		return nil, ErrNilMessageContent
	}
	text, err := c.ParseTextEntities(ctx, t.MessageText, t.ParseMode, t.Entities)
	if err != nil {
		return nil, err
	}

	m := &tg.InputBotInlineMessageText{
		NoWebpage: t.DisableWebPagePreview,
		Message:   text.Message,
		Entities:  text.Entities,
	}
	if markup != nil {
		rm, err := markup.Write(ctx, c)
		if err != nil {
			return nil, err
		}
		m.ReplyMarkup = rm
	}
	return m, nil
}
