package textparse

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

type staticUsers map[int64]bool

func (u staticUsers) ResolveUser(_ context.Context, id int64) (tg.InputUserClass, error) {
	if !u[id] {
		return nil, ErrPeerInvalid
	}
	return &tg.InputUser{UserID: id, AccessHash: id * 10}, nil
}

func TestParse(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		mode     parsemode.Option
		message  string
		entities []tg.MessageEntityClass
	}{
		{
			name:     "combined markdown bold",
			text:     "Hello **world**",
			mode:     parsemode.Unset(),
			message:  "Hello world",
			entities: []tg.MessageEntityClass{&tg.MessageEntityBold{Offset: 6, Length: 5}},
		},
		{
			name:     "combined mixes html",
			text:     "__it__ and <u>under</u>",
			mode:     parsemode.Unset(),
			message:  "it and under",
			entities: []tg.MessageEntityClass{&tg.MessageEntityItalic{Offset: 0, Length: 2}, &tg.MessageEntityUnderline{Offset: 7, Length: 5}},
		},
		{
			name:     "strict markdown escapes html",
			text:     "Hello **world** <i>x</i>",
			mode:     parsemode.Explicit(parsemode.Markdown),
			message:  "Hello world <i>x</i>",
			entities: []tg.MessageEntityClass{&tg.MessageEntityBold{Offset: 6, Length: 5}},
		},
		{
			name:    "html tags",
			text:    `<b>bold</b> and <a href="https://example.com">link</a>`,
			mode:    parsemode.Explicit(parsemode.HTML),
			message: "bold and link",
			entities: []tg.MessageEntityClass{
				&tg.MessageEntityBold{Offset: 0, Length: 4},
				&tg.MessageEntityTextURL{Offset: 9, Length: 4, URL: "https://example.com"},
			},
		},
		{
			name:    "nested tags sorted by offset",
			text:    "<b>a<i>b</i></b>",
			mode:    parsemode.Explicit(parsemode.HTML),
			message: "ab",
			entities: []tg.MessageEntityClass{
				&tg.MessageEntityBold{Offset: 0, Length: 2},
				&tg.MessageEntityItalic{Offset: 1, Length: 1},
			},
		},
		{
			name:     "utf16 offsets",
			text:     "😀 **hi**",
			mode:     parsemode.Unset(),
			message:  "😀 hi",
			entities: []tg.MessageEntityClass{&tg.MessageEntityBold{Offset: 3, Length: 2}},
		},
		{
			name:     "disabled keeps markup",
			text:     "  **x**  ",
			mode:     parsemode.None(),
			message:  "**x**",
			entities: nil,
		},
		{
			name:     "pre with language",
			text:     "```go\nfmt.Println()\n```",
			mode:     parsemode.Explicit(parsemode.Markdown),
			message:  "fmt.Println()",
			entities: []tg.MessageEntityClass{&tg.MessageEntityPre{Offset: 0, Length: 13, Language: "go"}},
		},
		{
			name:     "delimiters inside code are literal",
			text:     "`a **b**`",
			mode:     parsemode.Unset(),
			message:  "a **b**",
			entities: []tg.MessageEntityClass{&tg.MessageEntityCode{Offset: 0, Length: 7}},
		},
		{
			name:     "markdown link",
			text:     "[site](https://example.com/?a=1&b=2)",
			mode:     parsemode.Unset(),
			message:  "site",
			entities: []tg.MessageEntityClass{&tg.MessageEntityTextURL{Offset: 0, Length: 4, URL: "https://example.com/?a=1&b=2"}},
		},
		{
			name:     "unknown tags ignored",
			text:     "<x>hi</x>",
			mode:     parsemode.Explicit(parsemode.HTML),
			message:  "hi",
			entities: nil,
		},
		{
			name:     "empty tags dropped",
			text:     "a<b></b>c",
			mode:     parsemode.Explicit(parsemode.HTML),
			message:  "ac",
			entities: nil,
		},
		{
			name:     "markdown inside title",
			text:     "<title>**x**</title> **y**",
			mode:     parsemode.Unset(),
			message:  "x y",
			entities: []tg.MessageEntityClass{&tg.MessageEntityBold{Offset: 0, Length: 1}, &tg.MessageEntityBold{Offset: 2, Length: 1}},
		},
		{
			name:     "tags inside script",
			text:     "<script><b>a</b></script><textarea><i>b</i></textarea>",
			mode:     parsemode.Explicit(parsemode.HTML),
			message:  "ab",
			entities: []tg.MessageEntityClass{&tg.MessageEntityBold{Offset: 0, Length: 1}, &tg.MessageEntityItalic{Offset: 1, Length: 1}},
		},
		{
			name:     "spoiler",
			text:     "||secret||",
			mode:     parsemode.Unset(),
			message:  "secret",
			entities: []tg.MessageEntityClass{&tg.MessageEntitySpoiler{Offset: 0, Length: 6}},
		},
	}

	p := &Parser{Default: parsemode.Combined}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := p.Parse(context.Background(), c.text, c.mode)
			require.NoError(t, err)
			assert.Equal(t, c.message, out.Message)
			assert.Equal(t, c.entities, out.Entities)
		})
	}
}

func TestParseDefaultMode(t *testing.T) {
	p := &Parser{Default: parsemode.Disabled}
	out, err := p.Parse(context.Background(), "**x**", parsemode.Unset())
	require.NoError(t, err)
	assert.Equal(t, "**x**", out.Message)
	assert.Empty(t, out.Entities)
}

func TestParseUnknownMode(t *testing.T) {
	p := &Parser{}
	_, err := p.Parse(context.Background(), "x", parsemode.Explicit("markdownv2"))
	assert.True(t, errors.Is(err, ErrUnknownParseMode))
}

func TestParseMentions(t *testing.T) {
	p := &Parser{Users: staticUsers{42: true}}
	out, err := p.Parse(context.Background(), `<a href="tg://user?id=42">me</a> <a href="tg://user?id=7">you</a>`, parsemode.Explicit(parsemode.HTML))
	require.NoError(t, err)
	assert.Equal(t, "me you", out.Message)
	assert.Equal(t, []tg.MessageEntityClass{
		&tg.InputMessageEntityMentionName{Offset: 0, Length: 2, UserID: &tg.InputUser{UserID: 42, AccessHash: 420}},
	}, out.Entities)
}

func TestParseLogsUnmatchedTags(t *testing.T) {
	var lines []string
	p := &Parser{Logf: func(_ context.Context, format string, _ ...interface{}) {
		lines = append(lines, format)
	}}
	out, err := p.Parse(context.Background(), "hi</b>", parsemode.Explicit(parsemode.HTML))
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Message)
	assert.Len(t, lines, 1)
}

func TestParseTextEntities(t *testing.T) {
	p := &Parser{Default: parsemode.Combined}
	ctx := context.Background()

	t.Run("entities win over mode", func(t *testing.T) {
		out, err := p.ParseTextEntities(ctx, " **Hello** world", parsemode.Explicit(parsemode.HTML), []tgbotapi.MessageEntity{
			{Type: "italic", Offset: 1, Length: 9},
		})
		require.NoError(t, err)
		assert.Equal(t, " **Hello** world", out.Message)
		assert.Equal(t, []tg.MessageEntityClass{&tg.MessageEntityItalic{Offset: 1, Length: 9}}, out.Entities)
	})

	t.Run("no entities falls back to mode", func(t *testing.T) {
		out, err := p.ParseTextEntities(ctx, "**Hello**", parsemode.Unset(), nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello", out.Message)
		assert.Equal(t, []tg.MessageEntityClass{&tg.MessageEntityBold{Offset: 0, Length: 5}}, out.Entities)
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := p.ParseTextEntities(ctx, "Hello world", parsemode.Unset(), []tgbotapi.MessageEntity{
			{Type: "bold", Offset: 6, Length: 10},
		})
		assert.True(t, errors.Is(err, ErrMalformedEntity))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := p.ParseTextEntities(ctx, "Hello", parsemode.Unset(), []tgbotapi.MessageEntity{
			{Type: "custom_emoji", Offset: 0, Length: 1},
		})
		assert.True(t, errors.Is(err, ErrUnsupportedEntity))
	})

	t.Run("text_mention without user", func(t *testing.T) {
		_, err := p.ParseTextEntities(ctx, "Hello", parsemode.Unset(), []tgbotapi.MessageEntity{
			{Type: "text_mention", Offset: 0, Length: 5},
		})
		assert.True(t, errors.Is(err, ErrMalformedEntity))
	})
}

func TestBotAPIRoundTrip(t *testing.T) {
	in := []tgbotapi.MessageEntity{
		{Type: "bold", Offset: 0, Length: 1},
		{Type: "pre", Offset: 1, Length: 1, Language: "go"},
		{Type: "text_link", Offset: 2, Length: 1, URL: "https://example.com"},
		{Type: "text_mention", Offset: 3, Length: 1, User: &tgbotapi.User{ID: 9}},
		{Type: "hashtag", Offset: 4, Length: 1},
		{Type: "strikethrough", Offset: 5, Length: 1},
	}
	p := &Parser{}
	tgEntities, err := p.FromBotAPI(context.Background(), "abcdef", in)
	require.NoError(t, err)

	out, err := ToBotAPI(tgEntities)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnparse(t *testing.T) {
	assert.Equal(t, "a &lt; b <b>bold</b>", Unparse("a < b bold", []tgbotapi.MessageEntity{
		{Type: "bold", Offset: 6, Length: 4},
	}))

	assert.Equal(t, `😀 <a href="https://example.com/?a=1&amp;b=2"><i>x</i></a>`, Unparse("😀 x", []tgbotapi.MessageEntity{
		{Type: "text_link", Offset: 3, Length: 1, URL: "https://example.com/?a=1&b=2"},
		{Type: "italic", Offset: 3, Length: 1},
	}))

	assert.Equal(t, "plain", Unparse("plain", nil))
}

func TestUnparseThenParse(t *testing.T) {
	entities := []tgbotapi.MessageEntity{
		{Type: "bold", Offset: 0, Length: 5},
		{Type: "code", Offset: 6, Length: 3},
	}
	rendered := Unparse("Hello <x> world", entities)

	p := &Parser{}
	out, err := p.Parse(context.Background(), rendered, parsemode.Explicit(parsemode.HTML))
	require.NoError(t, err)
	assert.Equal(t, "Hello <x> world", out.Message)
	assert.Equal(t, []tg.MessageEntityClass{
		&tg.MessageEntityBold{Offset: 0, Length: 5},
		&tg.MessageEntityCode{Offset: 6, Length: 3},
	}, out.Entities)
}
