package messages

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorpio189f/Media-Search-Bot-1/models"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, []string{"/sendme", "abc"}, commandArgs("/sendme@MediaSearchBot  abc"))
	assert.Equal(t, []string{"/c", "get"}, commandArgs("/c get"))
	assert.Equal(t, []string{"hello"}, commandArgs("hello"))
	assert.Nil(t, commandArgs("   "))
}

func TestMakeReplyMessage(t *testing.T) {
	m := &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: 42}}
	c := makeReplyMessage(m, "hi")
	assert.Equal(t, int64(42), c.ChatID)
	assert.Equal(t, 7, c.ReplyToMessageID)
	assert.Equal(t, "hi", c.Text)
	assert.True(t, c.DisableWebPagePreview)
}

func TestDescribeMedia(t *testing.T) {
	m := &models.Media{
		FileName:     "cat.mp4",
		FileUniqueID: "AgADAQAD",
		FileType:     "video",
		FileSize:     2048,
		Keywords:     []string{"cat", "mp4"},
	}
	assert.Equal(t, "cat.mp4\nUniqueID: AgADAQAD\nvideo, 2.0 kB\nKeywords: cat mp4", describeMedia(m))

	m.UsageCount = 1234
	m.LastUsed = time.Now()
	assert.Contains(t, describeMedia(m), "Used 1,234, last now")
}

func TestRenderHelp(t *testing.T) {
	text, entities, err := renderHelp(context.Background(), &textparse.Parser{Default: parsemode.Combined})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Searching\n"), text)
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "<p>")

	require.NotEmpty(t, entities)
	assert.Equal(t, "bold", entities[0].Type)
	assert.Equal(t, 0, entities[0].Offset)
	assert.Equal(t, len("Searching"), entities[0].Length)

	code, ok := lo.Find(entities, func(e tgbotapi.MessageEntity) bool { return e.Type == "code" })
	require.True(t, ok)
	assert.Equal(t, "@bot words", text[code.Offset:code.Offset+code.Length])
}

func TestResolveCaption(t *testing.T) {
	ctx := context.Background()
	p := &textparse.Parser{Default: parsemode.Combined}

	text, entities, err := resolveCaption(ctx, p, "**Cat** video", nil)
	require.NoError(t, err)
	assert.Equal(t, "Cat video", text)
	assert.Equal(t, []tgbotapi.MessageEntity{{Type: "bold", Offset: 0, Length: 3}}, entities)

	stored := []tgbotapi.MessageEntity{{Type: "italic", Offset: 2, Length: 3}}
	text, entities, err = resolveCaption(ctx, p, "**Cat** video", stored)
	require.NoError(t, err)
	assert.Equal(t, "**Cat** video", text)
	assert.Equal(t, stored, entities)

	text, entities, err = resolveCaption(ctx, p, "", nil)
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Empty(t, entities)
}
