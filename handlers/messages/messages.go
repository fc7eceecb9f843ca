package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/dctx"
	"github.com/scorpio189f/Media-Search-Bot-1/dctx/protoconf"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
)

const (
	errorMessageNotAdmin       = "Only admins can do this, sorry."
	errorMessageNotContributor = "Only contributors can do this, sorry."
)

func makeReplyMessage(message *tgbotapi.Message, reply string) *tgbotapi.MessageConfig {
	c := tgbotapi.NewMessage(message.Chat.ID, reply)
	c.ReplyToMessageID = message.MessageID
	c.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	c.DisableWebPagePreview = true
	return &c
}

// commandArgs splits a command message, dropping any @BotName suffix of the command.
func commandArgs(text string) []string {
	args := strings.Fields(text)
	if len(args) == 0 {
		return nil
	}
	if i := strings.Index(args[0], "@"); i > 0 {
		args[0] = args[0][:i]
	}
	return args
}

func HandleMessage(ctx context.Context, message *tgbotapi.Message) (tgbotapi.Chattable, error) {
	var response tgbotapi.Chattable
	var err error

	if f := tgapi.TGFileFromMessage(message); f != nil && message.Chat.IsPrivate() {
		response, err = handleFile(ctx, message, f)
	} else if message.Contact != nil {
		response, err = handleContact(ctx, message)
	} else if args := commandArgs(message.Text); len(args) > 0 && strings.HasPrefix(args[0], "/") {
		if handler, ok := commandMap[args[0]]; ok {
			res := ""
			res, err = handler(ctx, args)
			response = makeReplyMessage(message, res)
		} else if handler, ok := complexCommandMap[args[0]]; ok {
			response, err = handler(ctx, args, message)
		} else if message.Chat.IsPrivate() {
			response = makeReplyMessage(message, "Command not recognized.")
		}
	}

	if err != nil {
		// Don't cause retry. Log and respond that we have an internal error.
		log.Errorf(ctx, "%+v", err)
		response = makeReplyMessage(message, "Your action triggered an internal server error.")
	}

	return response, nil
}

func handleContact(ctx context.Context, message *tgbotapi.Message) (tgbotapi.Chattable, error) {
	if !dctx.IsAdmin(ctx) {
		return makeReplyMessage(message, errorMessageNotAdmin), nil
	}

	uid := int64(message.Contact.UserID)
	if uid == 0 {
		return nil, nil
	}

	t := dctx.ProtoconfFromContext(ctx).UserType(uid)
	reply := makeReplyMessage(message, fmt.Sprintf("User %d\nType: %v", uid, t))

	keyboard := tgbotapi.NewOneTimeReplyKeyboard()
	for _, t := range []protoconf.UserType{protoconf.USER, protoconf.CONTRIBUTOR, protoconf.ADMIN} {
		kb := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(fmt.Sprintf("/c auth %d %s", uid, t))}
		keyboard.Keyboard = append(keyboard.Keyboard, kb)
	}
	keyboard.Selective = true
	reply.ReplyMarkup = keyboard

	return reply, nil
}
