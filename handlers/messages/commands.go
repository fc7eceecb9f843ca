package messages

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/russross/blackfriday"
	"google.golang.org/appengine/v2"
	"google.golang.org/appengine/v2/datastore"

	"github.com/scorpio189f/Media-Search-Bot-1/dctx"
	"github.com/scorpio189f/Media-Search-Bot-1/dctx/protoconf"
	"github.com/scorpio189f/Media-Search-Bot-1/models"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
)

var commandMap = map[string]func(ctx context.Context, args []string) (string, error){
	"/start":   commandStart,
	"/me":      commandUserInfo,
	"/stats":   commandStats,
	"/c":       commandConfig,
	"/delete":  commandDelete,
	"/channel": commandChannel,
}

var complexCommandMap = map[string]func(ctx context.Context, args []string, message *tgbotapi.Message) (tgbotapi.Chattable, error){
	"/help":   commandHelp,
	"/sendme": commandSendMe,
}

const helpMarkdown = `**Searching**

Type ` + "`@bot words`" + ` in any chat. Every word must appear in the file name.

Start the query with a sort symbol: ` + "`+`" + ` most used, ` + "`-`" + ` least used, ` + "`>`" + ` recently used, ` + "`<`" + ` least recently used, ` + "`!`" + ` newest, ` + "`?`" + ` random.

End it with ` + "`| video`" + `, ` + "`| audio`" + `, ` + "`| animation`" + ` or ` + "`| document`" + ` to filter by type.

**Indexing**

Contributors can send files here. Posts in linked channels are indexed automatically.

**Commands**

` + "`/me`" + ` shows your access level. ` + "`/sendme <UniqueID>`" + ` sends a file back to you.
`

func commandStart(ctx context.Context, args []string) (string, error) {
	if len(args) > 1 && args[1] == "access" {
		return fmt.Sprintf("Forward this to an admin to get access.\nUser %d", dctx.UserFromContext(ctx).ID), nil
	}
	return fmt.Sprintf("Media Search Bot %s\nSee /help.", appengine.VersionID(ctx)), nil
}

func commandUserInfo(ctx context.Context, args []string) (string, error) {
	return fmt.Sprintf("User %d\nType: %v", dctx.UserFromContext(ctx).ID, dctx.UserTypeFromContext(ctx)), nil
}

// renderHelp converts markdown to HTML, then to entities, so the message shows formatted everywhere.
func renderHelp(ctx context.Context, parser *textparse.Parser) (string, []tgbotapi.MessageEntity, error) {
	html := blackfriday.MarkdownCommon([]byte(helpMarkdown))
	text, err := parser.Parse(ctx, string(html), parsemode.Explicit(parsemode.HTML))
	if err != nil {
		return "", nil, err
	}
	entities, err := textparse.ToBotAPI(text.Entities)
	if err != nil {
		return "", nil, err
	}
	return text.Message, entities, nil
}

func commandHelp(ctx context.Context, args []string, message *tgbotapi.Message) (tgbotapi.Chattable, error) {
	text, entities, err := renderHelp(ctx, tgapi.NewClient(dctx.ParseMode(ctx)).Parser())
	if err != nil {
		return nil, err
	}
	reply := makeReplyMessage(message, text)
	reply.Entities = entities
	return reply, nil
}

func commandStats(ctx context.Context, args []string) (string, error) {
	if !dctx.IsAdmin(ctx) {
		return errorMessageNotAdmin, nil
	}

	counts := make([]int, len(tgapi.FileTypes))
	errs := make([]error, len(tgapi.FileTypes))
	wg := sync.WaitGroup{}
	wg.Add(len(tgapi.FileTypes))

	for i := range tgapi.FileTypes {
		go func(i int) {
			defer wg.Done()
			counts[i], errs[i] = models.CountMedia(ctx, tgapi.FileTypes[i])
		}(i)
	}

	total, err := models.CountMedia(ctx, "")
	if err != nil {
		return "", err
	}

	wg.Wait()

	out := strings.Builder{}
	for i, t := range tgapi.FileTypes {
		if errs[i] != nil {
			return "", errs[i]
		}
		out.WriteString(fmt.Sprintf("%s: %s\n", t, humanize.Comma(int64(counts[i]))))
	}
	out.WriteString(fmt.Sprintf("\nTotal: %s\nChannels: %d", humanize.Comma(int64(total)), len(dctx.ProtoconfFromContext(ctx).Channels())))

	return out.String(), nil
}

func commandConfig(ctx context.Context, args []string) (string, error) {
	if !dctx.IsAdmin(ctx) {
		return errorMessageNotAdmin, nil
	}

	usage := "Usage:\n/c get|set|auth"

	var c *protoconf.Protoconf
	var err error

	if len(args) < 2 {
		return usage, nil
	}

	switch args[1] {
	case "get":
		c = dctx.ProtoconfFromContext(ctx)
	case "set":
		if len(args) != 4 {
			return "Usage:\n/c set <Key> <Value>", nil
		}
		c, err = protoconf.EditConf(ctx, args[2], args[3])
	case "auth":
		if len(args) != 4 {
			return "Usage:\n/c auth <UserID> <UserType>", nil
		}
		c, err = protoconf.SetUserType(ctx, args[2], args[3])
	default:
		return usage, nil
	}

	if err != nil {
		return err.Error(), nil
	}
	m := c.Format()
	if m == "" {
		return "(empty)", nil
	}
	return m, nil
}

func commandDelete(ctx context.Context, args []string) (string, error) {
	if !dctx.IsAdmin(ctx) {
		return errorMessageNotAdmin, nil
	}

	if len(args) != 2 {
		return "Usage:\n/delete <FileUniqueID>", nil
	}

	if err := models.DeleteMedia(ctx, args[1]); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return "Unknown media", nil
		}
		return "", err
	}
	return "Deleted " + args[1], nil
}

func commandChannel(ctx context.Context, args []string) (string, error) {
	if !dctx.IsAdmin(ctx) {
		return errorMessageNotAdmin, nil
	}

	usage := "Usage:\n/channel add|remove <ChatID>"
	if len(args) != 3 {
		return usage, nil
	}

	chatID, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return err.Error(), nil
	}

	var c *protoconf.Protoconf
	switch args[1] {
	case "add":
		c, err = protoconf.AddChannel(ctx, chatID)
	case "remove":
		c, err = protoconf.RemoveChannel(ctx, chatID)
	default:
		return usage, nil
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Channels: %v", c.Channels()), nil
}

func commandSendMe(ctx context.Context, args []string, message *tgbotapi.Message) (tgbotapi.Chattable, error) {
	if len(args) != 2 {
		return makeReplyMessage(message, "Usage:\n/sendme <FileUniqueID>"), nil
	}

	m, err := models.GetMedia(ctx, args[1])
	if err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return makeReplyMessage(message, "Unknown media"), nil
		}
		return nil, err
	}

	caption, entities, err := resolveCaption(ctx, tgapi.NewClient(dctx.ParseMode(ctx)).Parser(), m.Caption, m.Entities(ctx))
	if err != nil {
		return nil, err
	}
	return tgapi.MakeFileable(message.Chat.ID, m.FileID, m.FileType, caption, entities), nil
}

// resolveCaption formats a stored caption the same way inline results are formatted.
func resolveCaption(ctx context.Context, parser *textparse.Parser, caption string, entities []tgbotapi.MessageEntity) (string, []tgbotapi.MessageEntity, error) {
	text, err := parser.ParseTextEntities(ctx, caption, parsemode.Unset(), entities)
	if err != nil {
		return "", nil, err
	}
	out, err := textparse.ToBotAPI(text.Entities)
	if err != nil {
		return "", nil, err
	}
	return text.Message, out, nil
}
