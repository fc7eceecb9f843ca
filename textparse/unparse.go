package textparse

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type insertion struct {
	offset  int
	closing bool
	// The other end of the entity, used to keep nesting balanced.
	pair  int
	index int
	tag   string
}

func (a insertion) less(b insertion) bool {
	if a.offset != b.offset {
		return a.offset < b.offset
	}
	if a.closing != b.closing {
		return a.closing
	}
	if a.pair != b.pair {
		// Closers: the entity opened last closes first. Openers: the entity ending last opens first.
		return a.pair > b.pair
	}
	if a.closing {
		return a.index > b.index
	}
	return a.index < b.index
}

// Unparse renders text and its entities as HTML. Text outside tags is escaped.
func Unparse(text string, entities []tgbotapi.MessageEntity) string {
	units := utf16.Encode([]rune(text))

	var ins []insertion
	for i, e := range entities {
		if e.Length <= 0 {
			continue
		}
		var open, closing string
		switch e.Type {
		case "bold", "italic", "underline", "strikethrough":
			open, closing = "<"+e.Type[:1]+">", "</"+e.Type[:1]+">"
		case "code", "spoiler", "blockquote":
			open, closing = "<"+e.Type+">", "</"+e.Type+">"
		case "pre":
			if e.Language != "" {
				open = fmt.Sprintf(`<pre language="%s">`, html.EscapeString(e.Language))
			} else {
				open = "<pre>"
			}
			closing = "</pre>"
		case "text_link":
			open, closing = fmt.Sprintf(`<a href="%s">`, html.EscapeString(e.URL)), "</a>"
		case "text_mention":
			if e.User == nil {
				continue
			}
			open, closing = fmt.Sprintf(`<a href="tg://user?id=%d">`, e.User.ID), "</a>"
		default:
			continue
		}
		end := e.Offset + e.Length
		ins = append(ins,
			insertion{offset: e.Offset, pair: end, index: i, tag: open},
			insertion{offset: end, closing: true, pair: e.Offset, index: i, tag: closing})
	}
	sort.SliceStable(ins, func(i, j int) bool {
		return ins[i].less(ins[j])
	})

	var out strings.Builder
	pos := 0
	for _, in := range ins {
		at := clamp(in.offset, pos, len(units))
		out.WriteString(html.EscapeString(string(utf16.Decode(units[pos:at]))))
		out.WriteString(in.tag)
		pos = at
	}
	out.WriteString(html.EscapeString(string(utf16.Decode(units[pos:]))))
	return out.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
