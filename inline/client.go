// Package inline builds answers to inline queries out of files Telegram already stores.
package inline

import (
	"context"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"

	"github.com/scorpio189f/Media-Search-Bot-1/textparse"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

// Client is threaded through every nested Write call. It owns file lookups and
// text parsing so that results themselves hold no connection state.
type Client interface {
	// InputFileFromFileID resolves a Bot API file_id into a document handle.
	InputFileFromFileID(fileID string) (*tg.InputDocument, error)

	// ParseTextEntities resolves text under mode. Non-empty entities take
	// precedence over mode and are used as-is.
	ParseTextEntities(ctx context.Context, text string, mode parsemode.Option, entities []tgbotapi.MessageEntity) (*textparse.Text, error)
}
