package dctx

import (
	"context"
	"net/http"

	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/appengine/v2"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/config"
	"github.com/scorpio189f/Media-Search-Bot-1/dctx/protoconf"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

type contextKey int

const (
	ctxKey contextKey = iota
)

type contextData struct {
	// The user in session. Might be nil.
	user *tgbotapi.User
	// UNKNOWN if no user in session.
	userType protoconf.UserType

	conf *protoconf.Protoconf
}

func NewContext(req *http.Request) context.Context {
	ctx := appengine.NewContext(req)

	c, err := protoconf.GetConf(ctx)
	if err != nil {
		// Fail the request.
		panic("protoconf.GetConf: " + err.Error())
	}

	return context.WithValue(ctx, ctxKey, &contextData{
		conf: c,
	})
}

func fromContext(ctx context.Context) *contextData {
	if d, ok := ctx.Value(ctxKey).(*contextData); ok {
		return d
	}
	panic("attempting to call fromContext() without valid contextData")
}

func AttachUserInSession(ctx context.Context, user *tgbotapi.User) {
	if user == nil {
		return
	}
	d := fromContext(ctx)
	d.user = user
	d.userType = d.conf.UserType(user.ID)
}

func ProtoconfFromContext(ctx context.Context) *protoconf.Protoconf {
	return fromContext(ctx).conf
}

func UserFromContext(ctx context.Context) *tgbotapi.User {
	return fromContext(ctx).user
}

func UserTypeFromContext(ctx context.Context) protoconf.UserType {
	return fromContext(ctx).userType
}

func IsAdmin(ctx context.Context) bool {
	d := fromContext(ctx)
	return d.userType == protoconf.ADMIN
}

func IsContributor(ctx context.Context) bool {
	d := fromContext(ctx)
	return d.userType == protoconf.ADMIN || d.userType == protoconf.CONTRIBUTOR
}

// IsKnownUser is true for anyone an admin has assigned a UserType.
func IsKnownUser(ctx context.Context) bool {
	return fromContext(ctx).userType != protoconf.UNKNOWN
}

// ParseMode is the default for captions that do not pick one.
func ParseMode(ctx context.Context) parsemode.Mode {
	s := fromContext(ctx).conf.ParseMode()
	if s == "" {
		s = config.Get().DefaultParseMode
	}
	m, err := parsemode.FromString(s)
	if err != nil {
		log.Warningf(ctx, "parsemode.FromString: %v", err)
		return parsemode.Combined
	}
	return m
}
