package protoconf

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/scorpio189f/Media-Search-Bot-1/textparse/parsemode"
)

type UserType int32

const (
	UNKNOWN UserType = iota
	USER
	CONTRIBUTOR
	ADMIN
)

var userTypeNames = map[UserType]string{
	UNKNOWN:     "UNKNOWN",
	USER:        "USER",
	CONTRIBUTOR: "CONTRIBUTOR",
	ADMIN:       "ADMIN",
}

func (t UserType) String() string {
	return userTypeNames[t]
}

var ErrInvalidUserType = errors.New("invalid UserType")

func ParseUserType(s string) (UserType, error) {
	for t, name := range userTypeNames {
		if name == strings.ToUpper(s) {
			return t, nil
		}
	}
	return UNKNOWN, errors.Wrapf(ErrInvalidUserType, "%q", s)
}

const (
	KeyAuthUsers            = "auth_users"
	KeyChannels             = "channels"
	KeyCacheTime            = "cache_time"
	KeyMaxResults           = "max_results"
	KeyUseCaptionFilter     = "use_caption_filter"
	KeyRestrictToKnownUsers = "restrict_to_known_users"
	KeyParseMode            = "parse_mode"
)

const (
	defaultCacheTime  = 300
	defaultMaxResults = 10
	// Telegram accepts at most 50 results per answer.
	maxMaxResults = 50
)

var ErrUnknownKey = errors.New("unknown Protoconf key")

// Protoconf is the runtime configuration, editable by admins through /c.
type Protoconf struct {
	s *structpb.Struct
}

func New(s *structpb.Struct) *Protoconf {
	if s == nil {
		s = &structpb.Struct{}
	}
	if s.Fields == nil {
		s.Fields = make(map[string]*structpb.Value)
	}
	return &Protoconf{s: s}
}

func (c *Protoconf) Format() string {
	if len(c.s.GetFields()) == 0 {
		return ""
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Format(c.s)
}

func (c *Protoconf) users() *structpb.Struct {
	return c.s.GetFields()[KeyAuthUsers].GetStructValue()
}

func (c *Protoconf) UserType(uid int64) UserType {
	t, err := ParseUserType(c.users().GetFields()[strconv.FormatInt(uid, 10)].GetStringValue())
	if err != nil {
		return UNKNOWN
	}
	return t
}

func (c *Protoconf) setUserType(uid int64, t UserType) {
	users := c.users()
	if users == nil {
		users = &structpb.Struct{Fields: make(map[string]*structpb.Value)}
		c.s.Fields[KeyAuthUsers] = structpb.NewStructValue(users)
	}
	users.Fields[strconv.FormatInt(uid, 10)] = structpb.NewStringValue(t.String())
}

func (c *Protoconf) Channels() []int64 {
	var out []int64
	for _, v := range c.s.GetFields()[KeyChannels].GetListValue().GetValues() {
		out = append(out, int64(v.GetNumberValue()))
	}
	return out
}

func (c *Protoconf) IsChannel(chatID int64) bool {
	for _, id := range c.Channels() {
		if id == chatID {
			return true
		}
	}
	return false
}

func (c *Protoconf) setChannels(ids []int64) error {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = float64(id)
	}
	l, err := structpb.NewList(values)
	if err != nil {
		return err
	}
	c.s.Fields[KeyChannels] = structpb.NewListValue(l)
	return nil
}

func (c *Protoconf) number(k string, def int) int {
	v, ok := c.s.GetFields()[k]
	if !ok {
		return def
	}
	return int(v.GetNumberValue())
}

func (c *Protoconf) CacheTime() int {
	return c.number(KeyCacheTime, defaultCacheTime)
}

func (c *Protoconf) MaxResults() int {
	n := c.number(KeyMaxResults, defaultMaxResults)
	if n <= 0 || n > maxMaxResults {
		return maxMaxResults
	}
	return n
}

func (c *Protoconf) UseCaptionFilter() bool {
	return c.s.GetFields()[KeyUseCaptionFilter].GetBoolValue()
}

func (c *Protoconf) RestrictToKnownUsers() bool {
	return c.s.GetFields()[KeyRestrictToKnownUsers].GetBoolValue()
}

// ParseMode is empty when unset.
func (c *Protoconf) ParseMode() string {
	return c.s.GetFields()[KeyParseMode].GetStringValue()
}

// parseValue reads v for key k. v is JSON, or a bare string where k takes one.
func parseValue(k, v string) (*structpb.Value, error) {
	val := &structpb.Value{}
	if err := protojson.Unmarshal([]byte(v), val); err != nil {
		val = structpb.NewStringValue(v)
	}

	kindErr := func(want string) error {
		return errors.Newf("%s expects %s, got %s", k, want, v)
	}

	switch k {
	case KeyCacheTime, KeyMaxResults:
		if _, ok := val.GetKind().(*structpb.Value_NumberValue); !ok {
			return nil, kindErr("a number")
		}
	case KeyUseCaptionFilter, KeyRestrictToKnownUsers:
		if _, ok := val.GetKind().(*structpb.Value_BoolValue); !ok {
			return nil, kindErr("true or false")
		}
	case KeyChannels:
		l := val.GetListValue()
		if l == nil {
			return nil, kindErr("a list of chat IDs")
		}
		for _, e := range l.GetValues() {
			if _, ok := e.GetKind().(*structpb.Value_NumberValue); !ok {
				return nil, kindErr("a list of chat IDs")
			}
		}
	case KeyParseMode:
		if _, err := parsemode.FromString(val.GetStringValue()); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrUnknownKey, "%q", k)
	}
	return val, nil
}
