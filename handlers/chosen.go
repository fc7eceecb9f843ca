package handlers

import (
	"context"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/scorpio189f/Media-Search-Bot-1/models"
)

// Result ids are FileUniqueIDs, see constructInlineResult.
func HandleChosenInlineResult(ctx context.Context, result *tgbotapi.ChosenInlineResult) error {
	return models.IncrementUsageCounter(ctx, result.ResultID)
}
