package tgapi

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"

	"github.com/scorpio189f/Media-Search-Bot-1/inline"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse"
)

// Answerer sends inline answers through the Bot API.
type Answerer struct {
	bot *tgbotapi.BotAPI
}

func NewAnswerer(bot *tgbotapi.BotAPI) *Answerer {
	return &Answerer{bot: bot}
}

func (a *Answerer) AnswerInlineQuery(_ context.Context, answer *inline.Answer) error {
	c, err := MakeInlineConfig(answer)
	if err != nil {
		return err
	}
	_, err = a.bot.Request(c)
	return err
}

func MakeInlineConfig(answer *inline.Answer) (tgbotapi.InlineConfig, error) {
	results := make([]interface{}, 0, len(answer.Results))
	for _, r := range answer.Results {
		res, err := MakeInlineQueryResult(r)
		if err != nil {
			return tgbotapi.InlineConfig{}, errors.Wrapf(err, "result %s", r.ID)
		}
		results = append(results, res)
	}

	return tgbotapi.InlineConfig{
		InlineQueryID:     answer.QueryID,
		Results:           results,
		CacheTime:         answer.CacheTime,
		IsPersonal:        answer.IsPersonal,
		NextOffset:        answer.NextOffset,
		SwitchPMText:      answer.SwitchPMText,
		SwitchPMParameter: answer.SwitchPMParameter,
	}, nil
}

// MakeInlineQueryResult expresses a written result as a Bot API cached document.
func MakeInlineQueryResult(r *inline.Result) (tgbotapi.InlineQueryResultCachedDocument, error) {
	res := tgbotapi.NewInlineQueryResultCachedDocument(r.ID, r.FileID, r.Title)
	res.Description = r.Description

	switch m := r.SendMessage.(type) {
	case *tg.InputBotInlineMessageMediaAuto:
		entities, err := textparse.ToBotAPI(m.Entities)
		if err != nil {
			return res, err
		}
		res.Caption = m.Message
		res.CaptionEntities = entities
		if res.ReplyMarkup, err = makeKeyboard(m.ReplyMarkup); err != nil {
			return res, err
		}
	case *tg.InputBotInlineMessageText:
		entities, err := textparse.ToBotAPI(m.Entities)
		if err != nil {
			return res, err
		}
		res.InputMessageContent = tgbotapi.InputTextMessageContent{
			Text:                  m.Message,
			Entities:              entities,
			DisableWebPagePreview: m.NoWebpage,
		}
		if res.ReplyMarkup, err = makeKeyboard(m.ReplyMarkup); err != nil {
			return res, err
		}
	default:
		return res, errors.Newf("unsupported inline message %T", r.SendMessage)
	}
	return res, nil
}

func makeKeyboard(markup tg.ReplyMarkupClass) (*tgbotapi.InlineKeyboardMarkup, error) {
	if markup == nil {
		return nil, nil
	}
	m, ok := markup.(*tg.ReplyInlineMarkup)
	if !ok {
		return nil, errors.Newf("unsupported reply markup %T", markup)
	}

	out := &tgbotapi.InlineKeyboardMarkup{}
	for _, row := range m.Rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range row.Buttons {
			var button tgbotapi.InlineKeyboardButton
			switch b := b.(type) {
			case *tg.KeyboardButtonURL:
				button = tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL)
			case *tg.KeyboardButtonCallback:
				button = tgbotapi.NewInlineKeyboardButtonData(b.Text, string(b.Data))
			case *tg.KeyboardButtonSwitchInline:
				query := b.Query
				button = tgbotapi.InlineKeyboardButton{Text: b.Text}
				if b.SamePeer {
					button.SwitchInlineQueryCurrentChat = &query
				} else {
					button.SwitchInlineQuery = &query
				}
			case *tg.KeyboardButtonGame:
				button = tgbotapi.InlineKeyboardButton{Text: b.Text, CallbackGame: &tgbotapi.CallbackGame{}}
			case *tg.KeyboardButtonBuy:
				button = tgbotapi.InlineKeyboardButton{Text: b.Text, Pay: true}
			default:
				return nil, errors.Wrapf(inline.ErrInvalidButton, "%T", b)
			}
			buttons = append(buttons, button)
		}
		out.InlineKeyboard = append(out.InlineKeyboard, buttons)
	}
	return out, nil
}
