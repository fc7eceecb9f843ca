package reservoir

import (
	"bytes"
	"context"
	"math/rand"

	"github.com/cockroachdb/errors"
	"google.golang.org/appengine/v2/datastore"
	"google.golang.org/appengine/v2/memcache"
)

const (
	memcacheKey   = "MSB:RSV1"
	supportedKind = "Media"
)

var separator = []byte(":")

// The reservoir is a shuffled list of Media StringIDs joined by separator.
// We don't use Gob or Key.encode here because they waste space for things like field names in Go struct.

// TryRotateReservoir drops the first limit entries, reporting false when the
// reservoir needs a refill.
func TryRotateReservoir(ctx context.Context, limit int) bool {
	i, err := memcache.Get(ctx, memcacheKey)
	if err != nil {
		return false
	}

	v, ok := rotate(i.Value, limit)
	if !ok {
		return false
	}

	err = memcache.Set(ctx, &memcache.Item{
		Key:   memcacheKey,
		Value: v,
	})
	return err == nil
}

// rotate refuses when fewer than 2*limit entries remain, so a read after it
// still gets a full page.
func rotate(v []byte, limit int) ([]byte, bool) {
	ks := bytes.SplitN(v, separator, 2*limit+1)
	if len(ks) < 2*limit {
		return nil, false
	}
	return bytes.Join(ks[limit:], separator), true
}

func head(v []byte, limit int) []string {
	bs := bytes.SplitN(v, separator, limit+1)
	if len(bs) > limit {
		bs = bs[:limit]
	}

	var ids []string
	for _, b := range bs {
		if len(b) > 0 {
			ids = append(ids, string(b))
		}
	}
	return ids
}

func RefillReservoir(ctx context.Context, keys []*datastore.Key) error {
	rand.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})

	var bs [][]byte
	for _, k := range keys {
		if k.Kind() != supportedKind || k.StringID() == "" {
			return errors.Newf("reservoir cannot hold key %s", k)
		}
		bs = append(bs, []byte(k.StringID()))
	}

	return memcache.Set(ctx, &memcache.Item{
		Key:   memcacheKey,
		Value: bytes.Join(bs, separator),
	})
}

func ReadReservoir(ctx context.Context, limit int) ([]*datastore.Key, error) {
	i, err := memcache.Get(ctx, memcacheKey)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var keys []*datastore.Key
	for _, id := range head(i.Value, limit) {
		keys = append(keys, datastore.NewKey(ctx, supportedKind, id, 0, nil))
	}

	return keys, nil
}
