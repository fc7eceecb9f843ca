package protoconf

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/qedus/nds"
	"google.golang.org/appengine/v2/datastore"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/scorpio189f/Media-Search-Bot-1/config"
)

type ProtoconfWrapper struct {
	SerializedProtoconf []byte `datastore:",noindex"`
}

const (
	entityKind = "Protoconf"
	stringKey  = "media-search"
)

func parse(p *ProtoconfWrapper) *Protoconf {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(p.SerializedProtoconf, s); err != nil {
		panic("proto.Unmarshal: " + err.Error())
	}
	return New(s)
}

func key(ctx context.Context) *datastore.Key {
	return datastore.NewKey(ctx, entityKind, stringKey, 0, nil)
}

func readInternal(ctx context.Context) (*Protoconf, error) {
	c := new(ProtoconfWrapper)
	if err := nds.Get(ctx, key(ctx), c); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			// Protoconf is never initialized. Return an empty one.
			return New(nil), nil
		}
		return nil, err
	}
	return parse(c), nil
}

func GetConf(ctx context.Context) (*Protoconf, error) {
	c, err := readInternal(ctx)
	if err != nil {
		return nil, err
	}

	// InitAdmin is always an ADMIN, even if Protoconf tells us otherwise.
	c.setUserType(config.Get().InitAdminID, ADMIN)
	return c, nil
}

func updateInternal(ctx context.Context, modifier func(c *Protoconf) error) (*Protoconf, error) {
	var c *Protoconf
	err := nds.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		c, err = GetConf(ctx)
		if err != nil {
			return err
		}

		if err = modifier(c); err != nil {
			return err
		}

		m, err := proto.Marshal(c.s)
		if err != nil {
			panic("proto.Marshal: " + err.Error())
		}

		_, err = nds.Put(ctx, key(ctx), &ProtoconfWrapper{SerializedProtoconf: m})
		return err
	}, nil)
	return c, err
}

// EditConf sets k to v, where v is JSON or a bare string.
func EditConf(ctx context.Context, k, v string) (*Protoconf, error) {
	val, err := parseValue(k, v)
	if err != nil {
		return nil, err
	}
	return updateInternal(ctx, func(c *Protoconf) error {
		c.s.Fields[k] = val
		return nil
	})
}

func SetUserType(ctx context.Context, u, t string) (*Protoconf, error) {
	uid, err := strconv.ParseInt(u, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid UserID")
	}

	te, err := ParseUserType(t)
	if err != nil {
		return nil, err
	}

	return updateInternal(ctx, func(c *Protoconf) error {
		c.setUserType(uid, te)
		return nil
	})
}

func AddChannel(ctx context.Context, chatID int64) (*Protoconf, error) {
	return updateInternal(ctx, func(c *Protoconf) error {
		if c.IsChannel(chatID) {
			return nil
		}
		return c.setChannels(append(c.Channels(), chatID))
	})
}

func RemoveChannel(ctx context.Context, chatID int64) (*Protoconf, error) {
	return updateInternal(ctx, func(c *Protoconf) error {
		var kept []int64
		for _, id := range c.Channels() {
			if id != chatID {
				kept = append(kept, id)
			}
		}
		return c.setChannels(kept)
	})
}
