package textparse

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gotd/td/tg"
	"golang.org/x/net/html"
)

var (
	mentionRe = regexp.MustCompile(`^tg://user\?id=(\d+)`)

	// Whitespace next to a leading opening tag or a trailing closing tag is not content.
	leadingTagRe  = regexp.MustCompile(`^\s*(<[\w<>=\s"]*>)\s*`)
	trailingTagRe = regexp.MustCompile(`\s*(</[\w</>]*>)\s*$`)
)

type entityKind int

const (
	kindBold entityKind = iota
	kindItalic
	kindUnderline
	kindStrike
	kindBlockquote
	kindCode
	kindPre
	kindSpoiler
	kindTextURL
	kindMention
)

type pendingEntity struct {
	kind     entityKind
	offset   int
	length   int
	url      string
	language string
	userID   int64
}

func newPendingEntity(tag string, attrs map[string]string, offset int) *pendingEntity {
	e := &pendingEntity{offset: offset}
	switch tag {
	case "b", "strong":
		e.kind = kindBold
	case "i", "em":
		e.kind = kindItalic
	case "u", "ins":
		e.kind = kindUnderline
	case "s", "del", "strike":
		e.kind = kindStrike
	case "blockquote":
		e.kind = kindBlockquote
	case "code":
		e.kind = kindCode
	case "pre":
		e.kind = kindPre
		e.language = attrs["language"]
	case "spoiler", "tg-spoiler":
		e.kind = kindSpoiler
	case "a":
		url := attrs["href"]
		if m := mentionRe.FindStringSubmatch(url); m != nil {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err == nil {
				e.kind = kindMention
				e.userID = id
				return e
			}
		}
		e.kind = kindTextURL
		e.url = url
	default:
		return nil
	}
	return e
}

func (e *pendingEntity) build(ctx context.Context, users UserResolver) (tg.MessageEntityClass, error) {
	switch e.kind {
	case kindBold:
		return &tg.MessageEntityBold{Offset: e.offset, Length: e.length}, nil
	case kindItalic:
		return &tg.MessageEntityItalic{Offset: e.offset, Length: e.length}, nil
	case kindUnderline:
		return &tg.MessageEntityUnderline{Offset: e.offset, Length: e.length}, nil
	case kindStrike:
		return &tg.MessageEntityStrike{Offset: e.offset, Length: e.length}, nil
	case kindBlockquote:
		return &tg.MessageEntityBlockquote{Offset: e.offset, Length: e.length}, nil
	case kindCode:
		return &tg.MessageEntityCode{Offset: e.offset, Length: e.length}, nil
	case kindPre:
		return &tg.MessageEntityPre{Offset: e.offset, Length: e.length, Language: e.language}, nil
	case kindSpoiler:
		return &tg.MessageEntitySpoiler{Offset: e.offset, Length: e.length}, nil
	case kindTextURL:
		return &tg.MessageEntityTextURL{Offset: e.offset, Length: e.length, URL: e.url}, nil
	case kindMention:
		user, err := resolveUser(ctx, users, e.userID)
		if err != nil || user == nil {
			return nil, err
		}
		return &tg.InputMessageEntityMentionName{Offset: e.offset, Length: e.length, UserID: user}, nil
	}
	return nil, errors.AssertionFailedf("unhandled entity kind %d", e.kind)
}

// resolveUser returns nil without error for users that cannot be addressed.
func resolveUser(ctx context.Context, users UserResolver, id int64) (tg.InputUserClass, error) {
	if users == nil {
		return &tg.InputUser{UserID: id}, nil
	}
	u, err := users.ResolveUser(ctx, id)
	if errors.Is(err, ErrPeerInvalid) {
		return nil, nil
	}
	return u, err
}

type htmlState struct {
	text   strings.Builder
	length int

	open   map[string][]*pendingEntity
	closed []*pendingEntity
}

func (s *htmlState) data(d string) {
	n := utf16Len(d)
	for _, es := range s.open {
		for _, e := range es {
			e.length += n
		}
	}
	s.text.WriteString(d)
	s.length += n
}

func (s *htmlState) start(tag string, attrs map[string]string) {
	e := newPendingEntity(tag, attrs, s.length)
	if e == nil {
		return
	}
	s.open[tag] = append(s.open[tag], e)
}

func (s *htmlState) end(tag string) bool {
	es := s.open[tag]
	if len(es) == 0 {
		return false
	}
	s.closed = append(s.closed, es[len(es)-1])
	if len(es) == 1 {
		delete(s.open, tag)
	} else {
		s.open[tag] = es[:len(es)-1]
	}
	return true
}

func (p *Parser) parseHTML(ctx context.Context, text string) (*Text, error) {
	text = leadingTagRe.ReplaceAllString(text, "$1")
	text = trailingTagRe.ReplaceAllString(text, "$1")

	s := &htmlState{open: make(map[string][]*pendingEntity)}
	z := html.NewTokenizer(strings.NewReader(text))

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.Wrap(err, "html tokenizer")
			}
			break loop
		case html.TextToken:
			s.data(string(z.Text()))
		case html.StartTagToken:
			// No element holds raw text here, <title> and <script> included.
			z.NextIsNotRawText()
			name, hasAttr := z.TagName()
			s.start(string(name), readAttrs(z, hasAttr))
		case html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			s.start(string(name), readAttrs(z, hasAttr))
			s.end(string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if !s.end(string(name)) {
				p.logf(ctx, "Unmatched closing tag </%s>", name)
			}
		}
	}

	for tag, es := range s.open {
		p.logf(ctx, "Unclosed tag <%s> (x%d)", tag, len(es))
	}

	var entities []tg.MessageEntityClass
	for _, e := range s.closed {
		built, err := e.build(ctx, p.Users)
		if err != nil {
			return nil, err
		}
		if built != nil {
			entities = append(entities, built)
		}
	}

	return &Text{Message: s.text.String(), Entities: sortEntities(entities)}, nil
}

func readAttrs(z *html.Tokenizer, more bool) map[string]string {
	attrs := make(map[string]string)
	for more {
		var k, v []byte
		k, v, more = z.TagAttr()
		attrs[string(k)] = string(v)
	}
	return attrs
}
