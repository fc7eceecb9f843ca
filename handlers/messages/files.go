package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/dctx"
	"github.com/scorpio189f/Media-Search-Bot-1/models"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
)

func describeMedia(m *models.Media) string {
	lines := []string{
		m.FileName,
		"UniqueID: " + m.FileUniqueID,
		fmt.Sprintf("%s, %s", m.FileType, humanize.Bytes(uint64(m.FileSize))),
	}
	if len(m.Keywords) > 0 {
		lines = append(lines, "Keywords: "+strings.Join(m.Keywords, " "))
	}
	if m.UsageCount > 0 {
		lines = append(lines, fmt.Sprintf("Used %s, last %s", humanize.Comma(m.UsageCount), humanize.Time(m.LastUsed)))
	}
	return strings.Join(lines, "\n")
}

func handleFile(ctx context.Context, message *tgbotapi.Message, f *tgapi.TGFile) (tgbotapi.Chattable, error) {
	if !dctx.IsContributor(ctx) {
		return makeReplyMessage(message, errorMessageNotContributor), nil
	}

	useCaption := dctx.ProtoconfFromContext(ctx).UseCaptionFilter()
	m, err := models.SaveMedia(ctx, f, message.Caption, message.CaptionEntities, models.Origin{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Creator:   message.From.ID,
	}, useCaption)
	if err != nil {
		if errors.Is(err, models.ErrMediaExists) {
			return makeReplyMessage(message, "Already indexed: "+f.FileUniqueID), nil
		}
		return nil, err
	}

	return makeReplyMessage(message, "Indexed:\n"+describeMedia(m)), nil
}

// HandleChannelPost indexes files posted to the configured channels. Channels get no reply.
func HandleChannelPost(ctx context.Context, post *tgbotapi.Message) error {
	conf := dctx.ProtoconfFromContext(ctx)
	if !conf.IsChannel(post.Chat.ID) {
		log.Debugf(ctx, "Ignoring post from unknown chat %d", post.Chat.ID)
		return nil
	}

	f := tgapi.TGFileFromMessage(post)
	if f == nil {
		return nil
	}

	_, err := models.SaveMedia(ctx, f, post.Caption, post.CaptionEntities, models.Origin{
		ChatID:    post.Chat.ID,
		MessageID: post.MessageID,
	}, conf.UseCaptionFilter())
	if errors.Is(err, models.ErrMediaExists) {
		log.Infof(ctx, "%s from chat %d is already indexed", f.FileUniqueID, post.Chat.ID)
		return nil
	}
	return err
}
