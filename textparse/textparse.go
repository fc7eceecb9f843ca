// Package textparse turns markdown or HTML flavoured text into plain text plus
// MTProto message entities, and back.
package textparse

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"

	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

var (
	ErrUnknownParseMode  = errors.New("unknown parse mode")
	ErrMalformedEntity   = errors.New("malformed message entity")
	ErrUnsupportedEntity = errors.New("unsupported message entity")

	// ErrPeerInvalid is returned by a UserResolver for users it cannot address.
	// Mentions of such users are dropped instead of failing the parse.
	ErrPeerInvalid = errors.New("peer id invalid")
)

// Text is a message body with its formatting.
type Text struct {
	Message  string
	Entities []tg.MessageEntityClass
}

type UserResolver interface {
	ResolveUser(ctx context.Context, userID int64) (tg.InputUserClass, error)
}

// Parser holds the host-wide parsing defaults.
type Parser struct {
	Default parsemode.Mode
	Users   UserResolver

	// Logf, if set, receives debug output such as unmatched closing tags.
	Logf func(ctx context.Context, format string, args ...interface{})
}

func (p *Parser) logf(ctx context.Context, format string, args ...interface{}) {
	if p.Logf != nil {
		p.Logf(ctx, format, args...)
	}
}

// Parse applies mode to text. Unset resolves to p.Default.
func (p *Parser) Parse(ctx context.Context, text string, mode parsemode.Option) (*Text, error) {
	text = strings.TrimSpace(text)

	switch m := mode.Resolve(p.Default); m {
	case parsemode.Disabled:
		return &Text{Message: text}, nil
	case parsemode.Combined:
		return p.parseHTML(ctx, markdownToHTML(text, false))
	case parsemode.Markdown:
		return p.parseHTML(ctx, markdownToHTML(text, true))
	case parsemode.HTML:
		return p.parseHTML(ctx, text)
	default:
		return nil, errors.Wrapf(ErrUnknownParseMode, "%q", m)
	}
}

// ParseTextEntities resolves a caption. Explicit entities win over mode and are sent as-is.
func (p *Parser) ParseTextEntities(ctx context.Context, text string, mode parsemode.Option, entities []tgbotapi.MessageEntity) (*Text, error) {
	if len(entities) == 0 {
		return p.Parse(ctx, text, mode)
	}

	out, err := p.FromBotAPI(ctx, text, entities)
	if err != nil {
		return nil, err
	}
	return &Text{Message: text, Entities: out}, nil
}

func sortEntities(entities []tg.MessageEntityClass) []tg.MessageEntityClass {
	out := entities[:0]
	for _, e := range entities {
		if e.GetLength() > 0 {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GetOffset() < out[j].GetOffset()
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
