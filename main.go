package main

import (
	"io"
	"net/http"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"google.golang.org/appengine/v2"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/config"
	"github.com/scorpio189f/Media-Search-Bot-1/dctx"
	"github.com/scorpio189f/Media-Search-Bot-1/handlers"
	"github.com/scorpio189f/Media-Search-Bot-1/handlers/messages"
	"github.com/scorpio189f/Media-Search-Bot-1/models"
	"github.com/scorpio189f/Media-Search-Bot-1/paths"
	"github.com/scorpio189f/Media-Search-Bot-1/scheduler"
	"github.com/scorpio189f/Media-Search-Bot-1/scheduler/metadatamode"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
	"github.com/scorpio189f/Media-Search-Bot-1/webui"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	r := httprouter.New()
	r.HandlerFunc(http.MethodPost, tgapi.TgWebhookPath(config.Get().TgToken), webhook)
	r.HandlerFunc(http.MethodGet, paths.RegisterWebhook, registerWebhook)
	r.HandlerFunc(http.MethodPost, paths.UpdateFileMetadata, updateFileMetadata)
	r.HandlerFunc(http.MethodGet, paths.QueueUpdateFileMetadata, queueUpdateFileMetadata)
	r.HandlerFunc(http.MethodGet, paths.RotateReservoir, rotateReservoir)
	r.GET(paths.WebUI, webui.Handler)

	http.Handle("/", r)
	appengine.Main()
}

func registerWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := dctx.NewContext(r)

	bot := tgapi.NewTgBotNoCheck(ctx)

	if _, err := tgapi.RegisterWebhook(ctx, bot); err != nil {
		log.Errorf(ctx, "tgapi.RegisterWebhook: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "help", Description: "how to search"},
		tgbotapi.BotCommand{Command: "me", Description: "show your access level"},
		tgbotapi.BotCommand{Command: "sendme", Description: "send a file by its unique ID"})
	if _, err := bot.Request(commands); err != nil {
		log.Errorf(ctx, "bot.Request: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, _ = w.Write([]byte("OK"))
}

func updateFileMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := dctx.NewContext(r)

	id := r.FormValue("id")
	if id == "" {
		http.Error(w, "Missing arg id", http.StatusBadRequest)
		return
	}

	mode := metadatamode.FromString(r.FormValue("mode"))

	err := models.UpdateFileMetadata(ctx, id, mode)
	if err != nil {
		log.Errorf(ctx, "models.UpdateFileMetadata: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func queueUpdateFileMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := dctx.NewContext(r)

	ids, err := models.AllMediaStorageKeys(ctx)
	if err != nil {
		log.Errorf(ctx, "models.AllMediaStorageKeys: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mode := metadatamode.FromString(r.FormValue("mode"))

	err = scheduler.ScheduleUpdateFileMetadata(ctx, ids, mode)
	if err != nil {
		log.Errorf(ctx, "scheduler.ScheduleUpdateFileMetadata: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func rotateReservoir(w http.ResponseWriter, r *http.Request) {
	ctx := dctx.NewContext(r)

	err := models.RotateReservoir(ctx)
	if err != nil {
		log.Errorf(ctx, "models.RotateReservoir: %+v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func webhook(w http.ResponseWriter, r *http.Request) {
	ctx := dctx.NewContext(r)

	bytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf(ctx, "io.ReadAll: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(bytes, &update); err != nil {
		log.Errorf(ctx, "json.Unmarshal: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	log.Debugf(ctx, "%s", bytes)

	var response tgbotapi.Chattable

	switch {
	case update.Message != nil:
		dctx.AttachUserInSession(ctx, update.Message.From)
		response, err = messages.HandleMessage(ctx, update.Message)
	case update.ChannelPost != nil:
		err = messages.HandleChannelPost(ctx, update.ChannelPost)
	case update.InlineQuery != nil:
		dctx.AttachUserInSession(ctx, update.InlineQuery.From)
		err = handlers.HandleInlineQuery(ctx, update.InlineQuery)
	case update.ChosenInlineResult != nil:
		dctx.AttachUserInSession(ctx, update.ChosenInlineResult.From)
		err = handlers.HandleChosenInlineResult(ctx, update.ChosenInlineResult)
	}

	if err == nil && response != nil {
		err = tgbotapi.WriteToHTTPResponse(w, response)
	}

	if err != nil {
		log.Errorf(ctx, "%+v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
