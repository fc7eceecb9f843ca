package handlers

import (
	"context"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/dctx"
	"github.com/scorpio189f/Media-Search-Bot-1/inline"
	"github.com/scorpio189f/Media-Search-Bot-1/models"
	"github.com/scorpio189f/Media-Search-Bot-1/models/sortmode"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
	"github.com/scorpio189f/Media-Search-Bot-1/utils"
)

const (
	searchAgainText = "Search again"

	switchPMText      = "You are not allowed to search. Tap to ask for access."
	switchPMParameter = "access"

	maxTitleLength = 128
)

func resultTitle(m *models.Media) string {
	if m.FileName != "" {
		return utils.Truncate(m.FileName, maxTitleLength)
	}
	if m.Caption != "" {
		return utils.Truncate(m.Caption, maxTitleLength)
	}
	return "Untitled " + m.FileType
}

func constructInlineResult(ctx context.Context, m *models.Media, query string) *inline.InlineFileResult {
	return inline.NewInlineFileResult(m.FileID, resultTitle(m),
		inline.WithID(m.FileUniqueID),
		inline.WithDescription(utils.DescribeFile(m.FileSize, m.FileType, m.MimeType)),
		inline.WithCaption(m.Caption),
		inline.WithCaptionEntities(m.Entities(ctx)),
		inline.WithReplyMarkup(inline.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{Text: searchAgainText, SwitchInlineQueryCurrentChat: &query}))),
	)
}

func constructInlineResults(ctx context.Context, ms []*models.Media, query string) []*inline.InlineFileResult {
	return lo.Map(ms, func(m *models.Media, _ int) *inline.InlineFileResult {
		return constructInlineResult(ctx, m, query)
	})
}

func HandleInlineQuery(ctx context.Context, query *tgbotapi.InlineQuery) error {
	conf := dctx.ProtoconfFromContext(ctx)
	c := tgapi.NewClient(dctx.ParseMode(ctx))
	answerer := tgapi.NewAnswerer(tgapi.NewTgBotNoCheck(ctx))

	a := &inline.Answer{
		QueryID:   query.ID,
		CacheTime: conf.CacheTime(),
	}

	if conf.RestrictToKnownUsers() && !dctx.IsKnownUser(ctx) {
		a.IsPersonal = true
		a.SwitchPMText = switchPMText
		a.SwitchPMParameter = switchPMParameter
		return inline.AnswerQuery(ctx, c, answerer, a, nil)
	}

	q := models.ParseQuery(query.Query)
	if q.SortMode == sortmode.RandomDraw {
		a.CacheTime = 0
	}

	ms, nextCursor, err := models.SearchMedia(ctx, q, query.Offset, query.ID, conf.MaxResults())
	if err != nil {
		return err
	}
	a.NextOffset = nextCursor

	log.Debugf(ctx, "Query %q: %d results, next offset %q", query.Query, len(ms), nextCursor)
	return inline.AnswerQuery(ctx, c, answerer, a, constructInlineResults(ctx, ms, query.Query))
}
