package tgapi

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/appengine/v2"
	"google.golang.org/appengine/v2/log"
	"google.golang.org/appengine/v2/urlfetch"

	"github.com/scorpio189f/Media-Search-Bot-1/config"
)

// Bot API refuses downloads above this size.
const MaxDownloadSize = 20 << 20

func NewTgBot(ctx context.Context) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPIWithClient(config.Get().TgToken, tgbotapi.APIEndpoint, urlfetch.Client(ctx))
}

// NewTgBotNoCheck skips the getMe round trip done by NewTgBot.
func NewTgBotNoCheck(ctx context.Context) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{
		Token:  config.Get().TgToken,
		Client: urlfetch.Client(ctx),
		Buffer: 100,
	}
	bot.SetAPIEndpoint(tgbotapi.APIEndpoint)
	return bot
}

func RegisterWebhook(ctx context.Context, bot *tgbotapi.BotAPI) (*tgbotapi.APIResponse, error) {
	wh, err := tgbotapi.NewWebhook(fmt.Sprintf("https://%s%s", appengine.DefaultVersionHostname(ctx), TgWebhookPath(bot.Token)))
	if err != nil {
		return nil, err
	}
	return bot.Request(wh)
}

func TgWebhookPath(token string) string {
	return fmt.Sprintf("/webhook/%x", md5.Sum([]byte(token)))
}

func newFetchBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(backoff.WithMaxRetries(b, 4), ctx)
}

// FetchFileInfo resolves fileID and downloads its content, retrying transient failures.
func FetchFileInfo(ctx context.Context, fileID string) (*tgbotapi.File, []byte, error) {
	bot := NewTgBotNoCheck(ctx)

	var file tgbotapi.File
	err := backoff.Retry(func() error {
		var err error
		file, err = bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) && tgErr.Code < http.StatusInternalServerError {
			// Telegram looked at the request and refused it.
			return backoff.Permanent(err)
		}
		return err
	}, newFetchBackOff(ctx))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "getFile %s", fileID)
	}

	if file.FileSize > MaxDownloadSize {
		return nil, nil, errors.Newf("file %s is %d bytes, over the download limit", file.FileUniqueID, file.FileSize)
	}

	client := urlfetch.Client(ctx)
	var b []byte
	err = backoff.Retry(func() error {
		res, err := client.Get(file.Link(bot.Token))
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			err := errors.Newf("HTTP Status: %s", res.Status)
			if res.StatusCode < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			log.Warningf(ctx, "Downloading %s: %v", file.FileUniqueID, err)
			return err
		}

		b, err = io.ReadAll(res.Body)
		return err
	}, newFetchBackOff(ctx))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "downloading %s", file.FileUniqueID)
	}

	return &file, b, nil
}
