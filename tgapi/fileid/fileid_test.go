package fileid

import (
	"testing"

	"github.com/cockroachdb/errors"
	tdfileid "github.com/gotd/td/fileid"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ids issued by the Bot API.
const (
	animationID = "CgACAgIAAxkBAAM7YZqVjhoGXOIk6qgVu7xd0QvyRVEAArQQAAK7XrBIi5xgKHPRFpQiBA"
	videoID     = "BAACAgIAAxkBAANAYZzjSkCVY7Ttrp2l92eCQzYYxVEAAkoRAAJIYKFIRionwJTz4kIiBA"
	audioID     = "CQACAgIAAxkBAANEYZzt3rDAw5CkHSU8RZA8AzTTsyMAAvACAAKoAAF4SjhQUd8y3lIoIgQ"
	stickerID   = "CAACAgIAAxkBAAM6YZlDEHCmaTKrUhCIjxAPtPtjVx4AAicAA4dXjx6dGLyHwXVNcCIE"

	photoID     = "AgACAgIAAxkBAAM9YZqXG-B0WHEv7lFlQxOQDs6jrGQAAoa7MRvdfNlIhJa73cDxR0kBAAMCAAN4AAMiBA"
	thumbnailID = "AAMCAgADGQEAAzthmpWOGgZc4iTqqBW7vF3RC_JFUQACtBAAArtesEiLnGAoc9EWlAEAB20AAyIE"
	chatPhotoID = "AQADAgAD7a8xG75QcEkACAMAA2jAIuIW____cd7THMWjNdIiBA"
)

func TestInputDocument(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want *tg.InputDocument
	}{
		{
			name: "animation",
			in:   animationID,
			want: &tg.InputDocument{
				ID:            5237790523883786420,
				AccessHash:    -7775797414079718261,
				FileReference: []byte("\x01\x00\x00\x00;a\x9a\x95\x8e\x1a\x06\\\xe2$\xea\xa8\x15\xbb\xbc]\xd1\v\xf2EQ"),
			},
		},
		{
			name: "video",
			in:   videoID,
			want: &tg.InputDocument{
				ID:            5233570104335143242,
				AccessHash:    4819682371444353606,
				FileReference: []byte("\x01\x00\x00\x00@a\x9c\xe3J@\x95c\xb4\xed\xae\x9d\xa5\xf7g\x82C6\x18\xc5Q"),
			},
		},
		{
			name: "audio",
			in:   audioID,
			want: &tg.InputDocument{
				ID:            5366039677566452464,
				AccessHash:    2905629019683770424,
				FileReference: []byte("\x01\x00\x00\x00Da\x9c\xedް\xc0Ð\xa4\x1d%<E\x90<\x034ӳ#"),
			},
		},
		{
			name: "sticker",
			in:   stickerID,
			want: &tg.InputDocument{
				ID:            2202074980139663399,
				AccessHash:    8092253579521038493,
				FileReference: []byte("\x01\x00\x00\x00:a\x99C\x10p\xa6i2\xabR\x10\x88\x8f\x10\x0f\xb4\xfbcW\x1e"),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, err := InputDocument(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, doc)
		})
	}
}

func TestInputDocumentRejects(t *testing.T) {
	webLocation, err := tdfileid.EncodeFileID(tdfileid.FileID{
		Type: tdfileid.Animation,
		DC:   1,
		URL:  "https://example.com/a.mp4",
	})
	require.NoError(t, err)

	for name, s := range map[string]string{
		"empty":        "",
		"not base64":   "!!!not base64!!!",
		"truncated":    videoID[:20],
		"photo":        photoID,
		"thumbnail":    thumbnailID,
		"chat photo":   chatPhotoID,
		"web location": webLocation,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := InputDocument(s)
			assert.True(t, errors.Is(err, ErrInvalidFileID), "%v", err)
		})
	}
}

func TestIsPhoto(t *testing.T) {
	assert.True(t, isPhoto(tdfileid.Photo))
	assert.True(t, isPhoto(tdfileid.Wallpaper))
	assert.False(t, isPhoto(tdfileid.Document))
	assert.False(t, isPhoto(tdfileid.Animation))
}
