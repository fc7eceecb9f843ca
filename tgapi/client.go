package tgapi

import (
	"context"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/tgapi/fileid"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

// botUsers addresses users by id alone. The Bot API needs no access hash for mentions.
type botUsers struct{}

func (botUsers) ResolveUser(_ context.Context, userID int64) (tg.InputUserClass, error) {
	if userID <= 0 {
		return nil, textparse.ErrPeerInvalid
	}
	return &tg.InputUser{UserID: userID}, nil
}

// Client serializes inline results for this bot.
type Client struct {
	parser *textparse.Parser
}

// NewClient returns a Client whose Unset parse mode resolves to defaultMode.
func NewClient(defaultMode parsemode.Mode) *Client {
	return &Client{parser: &textparse.Parser{
		Default: defaultMode,
		Users:   botUsers{},
		Logf:    log.Debugf,
	}}
}

func (c *Client) Parser() *textparse.Parser {
	return c.parser
}

func (c *Client) InputFileFromFileID(fileID string) (*tg.InputDocument, error) {
	return fileid.InputDocument(fileID)
}

func (c *Client) ParseTextEntities(ctx context.Context, text string, mode parsemode.Option, entities []tgbotapi.MessageEntity) (*textparse.Text, error) {
	return c.parser.ParseTextEntities(ctx, text, mode, entities)
}
