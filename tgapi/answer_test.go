package tgapi

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorpio189f/Media-Search-Bot-1/inline"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi/fileid"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

// File ids issued by the Bot API.
const (
	videoFileID = "BAACAgIAAxkBAANAYZzjSkCVY7Ttrp2l92eCQzYYxVEAAkoRAAJIYKFIRionwJTz4kIiBA"
	photoFileID = "AgACAgIAAxkBAAM9YZqXG-B0WHEv7lFlQxOQDs6jrGQAAoa7MRvdfNlIhJa73cDxR0kBAAMCAAN4AAMiBA"
)

func TestMakeInlineConfig(t *testing.T) {
	ctx := context.Background()
	c := NewClient(parsemode.Combined)
	id := videoFileID

	query := "cats"
	results := []*inline.InlineFileResult{
		inline.NewInlineFileResult(id, "a.mkv",
			inline.WithID("a"),
			inline.WithDescription("Size: 1.0 MB"),
			inline.WithCaption("**a**"),
			inline.WithReplyMarkup(inline.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
				tgbotapi.InlineKeyboardButton{Text: "Search again", SwitchInlineQueryCurrentChat: &query})))),
		inline.NewInlineFileResult(id, "b.mkv",
			inline.WithID("b"),
			inline.WithInputMessageContent(&inline.InputTextMessageContent{
				MessageText: "see <a href=\"https://example.com\">here</a>",
				ParseMode:   parsemode.Explicit(parsemode.HTML),
			})),
	}

	written, err := inline.WriteAll(ctx, c, results)
	require.NoError(t, err)

	config, err := MakeInlineConfig(&inline.Answer{QueryID: "q", Results: written, CacheTime: 300, NextOffset: "10"})
	require.NoError(t, err)
	assert.Equal(t, "q", config.InlineQueryID)
	assert.Equal(t, 300, config.CacheTime)
	assert.Equal(t, "10", config.NextOffset)
	require.Len(t, config.Results, 2)

	a := config.Results[0].(tgbotapi.InlineQueryResultCachedDocument)
	assert.Equal(t, "document", a.Type)
	assert.Equal(t, "a", a.ID)
	assert.Equal(t, id, a.DocumentID)
	assert.Equal(t, "a.mkv", a.Title)
	assert.Equal(t, "Size: 1.0 MB", a.Description)
	assert.Equal(t, "a", a.Caption)
	assert.Empty(t, a.ParseMode)
	assert.Equal(t, []tgbotapi.MessageEntity{{Type: "bold", Offset: 0, Length: 1}}, a.CaptionEntities)
	require.NotNil(t, a.ReplyMarkup)
	require.NotNil(t, a.ReplyMarkup.InlineKeyboard[0][0].SwitchInlineQueryCurrentChat)
	assert.Equal(t, "cats", *a.ReplyMarkup.InlineKeyboard[0][0].SwitchInlineQueryCurrentChat)

	b := config.Results[1].(tgbotapi.InlineQueryResultCachedDocument)
	assert.Empty(t, b.Caption)
	assert.Nil(t, b.ReplyMarkup)
	assert.Equal(t, tgbotapi.InputTextMessageContent{
		Text:     "see here",
		Entities: []tgbotapi.MessageEntity{{Type: "text_link", Offset: 4, Length: 4, URL: "https://example.com"}},
	}, b.InputMessageContent)
}

func TestMakeInlineQueryResultUnsupported(t *testing.T) {
	_, err := MakeInlineQueryResult(&inline.Result{
		InputBotInlineResultDocument: tg.InputBotInlineResultDocument{
			ID:          "x",
			SendMessage: &tg.InputBotInlineMessageGame{},
		},
	})
	assert.Error(t, err)
}

func TestClientRejectsPhotos(t *testing.T) {
	c := NewClient(parsemode.Combined)
	_, err := c.InputFileFromFileID(photoFileID)
	assert.True(t, errors.Is(err, fileid.ErrInvalidFileID))
}

func TestBotUsers(t *testing.T) {
	u, err := botUsers{}.ResolveUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, &tg.InputUser{UserID: 5}, u)

	_, err = botUsers{}.ResolveUser(context.Background(), 0)
	assert.Error(t, err)
}

func TestTGFileFromMessage(t *testing.T) {
	m := &tgbotapi.Message{
		Animation: &tgbotapi.Animation{FileID: "anim", FileUniqueID: "u1", FileName: "a.mp4", MimeType: "video/mp4"},
		Document:  &tgbotapi.Document{FileID: "doc", FileUniqueID: "u1"},
	}
	f := TGFileFromMessage(m)
	require.NotNil(t, f)
	assert.Equal(t, FileTypeAnimation, f.FileType)
	assert.Equal(t, "anim", f.FileID)

	f = TGFileFromMessage(&tgbotapi.Message{Audio: &tgbotapi.Audio{FileID: "aud", Performer: "P", Title: "T"}})
	require.NotNil(t, f)
	assert.Equal(t, "P - T", f.FileName)

	assert.Nil(t, TGFileFromMessage(&tgbotapi.Message{Text: "hi"}))
}

func TestTgWebhookPath(t *testing.T) {
	assert.Equal(t, TgWebhookPath("token"), TgWebhookPath("token"))
	assert.NotEqual(t, TgWebhookPath("token"), TgWebhookPath("other"))
	assert.Len(t, TgWebhookPath("token"), len("/webhook/")+32)
}
