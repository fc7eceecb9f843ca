package textparse

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"
)

// utf16Len is the length of s as Telegram counts entity offsets.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// FromBotAPI converts Bot API entities for text without reinterpreting them.
func (p *Parser) FromBotAPI(ctx context.Context, text string, entities []tgbotapi.MessageEntity) ([]tg.MessageEntityClass, error) {
	textLen := utf16Len(text)

	var out []tg.MessageEntityClass
	for i, e := range entities {
		if e.Offset < 0 || e.Length <= 0 || e.Offset+e.Length > textLen {
			return nil, errors.Wrapf(ErrMalformedEntity, "entity %d (%s) spans [%d, %d) of %d", i, e.Type, e.Offset, e.Offset+e.Length, textLen)
		}

		offset, length := e.Offset, e.Length
		var c tg.MessageEntityClass
		switch e.Type {
		case "mention":
			c = &tg.MessageEntityMention{Offset: offset, Length: length}
		case "hashtag":
			c = &tg.MessageEntityHashtag{Offset: offset, Length: length}
		case "cashtag":
			c = &tg.MessageEntityCashtag{Offset: offset, Length: length}
		case "bot_command":
			c = &tg.MessageEntityBotCommand{Offset: offset, Length: length}
		case "url":
			c = &tg.MessageEntityURL{Offset: offset, Length: length}
		case "email":
			c = &tg.MessageEntityEmail{Offset: offset, Length: length}
		case "phone_number":
			c = &tg.MessageEntityPhone{Offset: offset, Length: length}
		case "bold":
			c = &tg.MessageEntityBold{Offset: offset, Length: length}
		case "italic":
			c = &tg.MessageEntityItalic{Offset: offset, Length: length}
		case "underline":
			c = &tg.MessageEntityUnderline{Offset: offset, Length: length}
		case "strikethrough":
			c = &tg.MessageEntityStrike{Offset: offset, Length: length}
		case "spoiler":
			c = &tg.MessageEntitySpoiler{Offset: offset, Length: length}
		case "blockquote":
			c = &tg.MessageEntityBlockquote{Offset: offset, Length: length}
		case "code":
			c = &tg.MessageEntityCode{Offset: offset, Length: length}
		case "pre":
			c = &tg.MessageEntityPre{Offset: offset, Length: length, Language: e.Language}
		case "text_link":
			if e.URL == "" {
				return nil, errors.Wrapf(ErrMalformedEntity, "entity %d: text_link without url", i)
			}
			c = &tg.MessageEntityTextURL{Offset: offset, Length: length, URL: e.URL}
		case "text_mention":
			if e.User == nil {
				return nil, errors.Wrapf(ErrMalformedEntity, "entity %d: text_mention without user", i)
			}
			user, err := resolveUser(ctx, p.Users, e.User.ID)
			if err != nil {
				return nil, err
			}
			if user == nil {
				continue
			}
			c = &tg.InputMessageEntityMentionName{Offset: offset, Length: length, UserID: user}
		default:
			return nil, errors.Wrapf(ErrUnsupportedEntity, "entity %d: %q", i, e.Type)
		}
		out = append(out, c)
	}
	return out, nil
}

// ToBotAPI is the inverse of FromBotAPI.
func ToBotAPI(entities []tg.MessageEntityClass) ([]tgbotapi.MessageEntity, error) {
	var out []tgbotapi.MessageEntity
	for _, c := range entities {
		e := tgbotapi.MessageEntity{Offset: c.GetOffset(), Length: c.GetLength()}
		switch c := c.(type) {
		case *tg.MessageEntityMention:
			e.Type = "mention"
		case *tg.MessageEntityHashtag:
			e.Type = "hashtag"
		case *tg.MessageEntityCashtag:
			e.Type = "cashtag"
		case *tg.MessageEntityBotCommand:
			e.Type = "bot_command"
		case *tg.MessageEntityURL:
			e.Type = "url"
		case *tg.MessageEntityEmail:
			e.Type = "email"
		case *tg.MessageEntityPhone:
			e.Type = "phone_number"
		case *tg.MessageEntityBold:
			e.Type = "bold"
		case *tg.MessageEntityItalic:
			e.Type = "italic"
		case *tg.MessageEntityUnderline:
			e.Type = "underline"
		case *tg.MessageEntityStrike:
			e.Type = "strikethrough"
		case *tg.MessageEntitySpoiler:
			e.Type = "spoiler"
		case *tg.MessageEntityBlockquote:
			e.Type = "blockquote"
		case *tg.MessageEntityCode:
			e.Type = "code"
		case *tg.MessageEntityPre:
			e.Type = "pre"
			e.Language = c.Language
		case *tg.MessageEntityTextURL:
			e.Type = "text_link"
			e.URL = c.URL
		case *tg.MessageEntityMentionName:
			e.Type = "text_mention"
			e.User = &tgbotapi.User{ID: c.UserID}
		case *tg.InputMessageEntityMentionName:
			u, ok := c.UserID.(*tg.InputUser)
			if !ok {
				return nil, errors.Wrapf(ErrUnsupportedEntity, "mention of %T", c.UserID)
			}
			e.Type = "text_mention"
			e.User = &tgbotapi.User{ID: u.UserID}
		default:
			return nil, errors.Wrapf(ErrUnsupportedEntity, "%T", c)
		}
		out = append(out, e)
	}
	return out, nil
}
