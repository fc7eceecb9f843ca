package cursor

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/appengine/v2/datastore"
	"google.golang.org/appengine/v2/memcache"
)

const (
	memcachePrefix = "MSB:QC1:"
)

func tryGetCursor(ctx context.Context, queryID string) *datastore.Cursor {
	i, err := memcache.Get(ctx, memcachePrefix+queryID)
	if err != nil {
		return nil
	}
	c, err := datastore.DecodeCursor(string(i.Value))
	if err != nil {
		return nil
	}
	return &c
}

// Split reads an inline query offset of the form "<offset>:<queryID>".
// Anything unparsable starts from the beginning.
func Split(lastCursor string) (int, string) {
	thisOffset, lastQueryID, _ := strings.Cut(lastCursor, ":")
	offset, err := strconv.Atoi(thisOffset)
	if err != nil || offset < 0 {
		return 0, ""
	}
	return offset, lastQueryID
}

func Offset(ctx context.Context, q *datastore.Query, lastCursor string) (*datastore.Query, int) {
	offset, lastQueryID := Split(lastCursor)
	if offset == 0 {
		return q, 0
	}

	if lastQueryID != "" {
		if cursor := tryGetCursor(ctx, lastQueryID); cursor != nil {
			return q.Start(*cursor), offset
		}
	}

	return q.Offset(offset), offset
}

func Store(ctx context.Context, cursor datastore.Cursor, queryID string, nextOffset int) string {
	_ = memcache.Add(ctx, &memcache.Item{
		Key:   memcachePrefix + queryID,
		Value: []byte(cursor.String()),
	})

	return strconv.Itoa(nextOffset) + ":" + queryID
}
