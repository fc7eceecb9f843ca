package inline

import (
	"context"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"
	"github.com/rs/xid"

	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

// ResultTypeFile is the discriminator of cached document results.
const ResultTypeFile = "file"

// InlineFileResult offers a previously uploaded file as an inline query result.
type InlineFileResult struct {
	ID          string
	FileID      string
	Title       string
	Description string

	Caption         string
	ParseMode       parsemode.Option
	CaptionEntities []tgbotapi.MessageEntity

	ReplyMarkup *InlineKeyboardMarkup

	// Message selects what is sent once the result is picked. nil means AutoMedia.
	Message MessageContent
}

type Option func(r *InlineFileResult)

func WithID(id string) Option {
	return func(r *InlineFileResult) { r.ID = id }
}

func WithDescription(d string) Option {
	return func(r *InlineFileResult) { r.Description = d }
}

func WithCaption(caption string) Option {
	return func(r *InlineFileResult) { r.Caption = caption }
}

func WithParseMode(mode parsemode.Option) Option {
	return func(r *InlineFileResult) { r.ParseMode = mode }
}

func WithCaptionEntities(entities []tgbotapi.MessageEntity) Option {
	return func(r *InlineFileResult) { r.CaptionEntities = entities }
}

func WithReplyMarkup(m *InlineKeyboardMarkup) Option {
	return func(r *InlineFileResult) { r.ReplyMarkup = m }
}

// WithInputMessageContent replaces the file with a custom message body. A nil c keeps AutoMedia.
func WithInputMessageContent(c InputMessageContent) Option {
	return func(r *InlineFileResult) {
		if c == nil {
			r.Message = AutoMedia{}
			return
		}
		r.Message = Custom{Content: c}
	}
}

// NewInlineFileResult builds a result for fileID. Without WithID a random id is assigned.
func NewInlineFileResult(fileID, title string, opts ...Option) *InlineFileResult {
	r := &InlineFileResult{
		FileID:  fileID,
		Title:   title,
		Message: AutoMedia{},
	}
	for _, o := range opts {
		o(r)
	}
	if r.ID == "" {
		r.ID = xid.New().String()
	}
	return r
}

// Result is a serialized InlineFileResult.
type Result struct {
	tg.InputBotInlineResultDocument

	// FileID is the Bot API identifier Document was resolved from.
	FileID string
}

// Write serializes r. Nothing is retried and no partial Result is returned.
func (r *InlineFileResult) Write(ctx context.Context, c Client) (*Result, error) {
	doc, err := c.InputFileFromFileID(r.FileID)
	if err != nil {
		return nil, err
	}

	content := r.Message
	if content == nil {
		content = AutoMedia{}
	}
	sendMessage, err := content.writeMessage(ctx, c, r)
	if err != nil {
		return nil, err
	}

	return &Result{
		InputBotInlineResultDocument: tg.InputBotInlineResultDocument{
			ID:          r.ID,
			Type:        ResultTypeFile,
			Title:       r.Title,
			Description: r.Description,
			Document:    doc,
			SendMessage: sendMessage,
		},
		FileID: r.FileID,
	}, nil
}

// MessageContent is either AutoMedia or Custom.
type MessageContent interface {
	writeMessage(ctx context.Context, c Client, r *InlineFileResult) (tg.InputBotInlineMessageClass, error)
}

// AutoMedia sends the file itself, captioned with the result's caption.
type AutoMedia struct{}

func (AutoMedia) writeMessage(ctx context.Context, c Client, r *InlineFileResult) (tg.InputBotInlineMessageClass, error) {
	text, err := c.ParseTextEntities(ctx, r.Caption, r.ParseMode, r.CaptionEntities)
	if err != nil {
		return nil, err
	}

	m := &tg.InputBotInlineMessageMediaAuto{
		Message:  text.Message,
		Entities: text.Entities,
	}
	if r.ReplyMarkup != nil {
		markup, err := r.ReplyMarkup.Write(ctx, c)
		if err != nil {
			return nil, err
		}
		m.ReplyMarkup = markup
	}
	return m, nil
}

// Custom sends Content instead of the file. The result caption is not used.
// A nil Content falls back to AutoMedia.
type Custom struct {
	Content InputMessageContent
}

func (m Custom) writeMessage(ctx context.Context, c Client, r *InlineFileResult) (tg.InputBotInlineMessageClass, error) {
	if m.Content == nil {
		return AutoMedia{}.writeMessage(ctx, c, r)
	}
	return m.Content.Write(ctx, c, r.ReplyMarkup)
}
