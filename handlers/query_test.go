package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorpio189f/Media-Search-Bot-1/models"
)

func TestConstructInlineResult(t *testing.T) {
	m := &models.Media{
		FileID:          "BQACAgUAAx0",
		FileUniqueID:    "AgADAQAD",
		FileName:        "cat.mp4",
		FileType:        "video",
		MimeType:        "video/mp4",
		FileSize:        1500000,
		Caption:         "Cat",
		CaptionEntities: []byte(`[{"type":"bold","offset":0,"length":3}]`),
	}

	r := constructInlineResult(context.Background(), m, "cat")
	assert.Equal(t, "AgADAQAD", r.ID)
	assert.Equal(t, "BQACAgUAAx0", r.FileID)
	assert.Equal(t, "cat.mp4", r.Title)
	assert.Equal(t, "Size: 1.5 MB | Type: video | video/mp4", r.Description)
	assert.Equal(t, "Cat", r.Caption)
	require.Len(t, r.CaptionEntities, 1)
	assert.Equal(t, "bold", r.CaptionEntities[0].Type)

	require.NotNil(t, r.ReplyMarkup)
	button := r.ReplyMarkup.InlineKeyboard[0][0]
	assert.Equal(t, searchAgainText, button.Text)
	require.NotNil(t, button.SwitchInlineQueryCurrentChat)
	assert.Equal(t, "cat", *button.SwitchInlineQueryCurrentChat)
}

func TestResultTitle(t *testing.T) {
	assert.Equal(t, "a.mkv", resultTitle(&models.Media{FileName: "a.mkv", Caption: "c"}))
	assert.Equal(t, "c", resultTitle(&models.Media{Caption: "c"}))
	assert.Equal(t, "Untitled audio", resultTitle(&models.Media{FileType: "audio"}))
}

func TestConstructInlineResults(t *testing.T) {
	rs := constructInlineResults(context.Background(), []*models.Media{{FileUniqueID: "a"}, {FileUniqueID: "b"}}, "")
	require.Len(t, rs, 2)
	assert.Equal(t, "a", rs[0].ID)
	assert.Equal(t, "b", rs[1].ID)
	assert.Empty(t, constructInlineResults(context.Background(), nil, ""))
}
