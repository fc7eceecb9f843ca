package models

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/qedus/nds"
	"google.golang.org/appengine/v2"
	"google.golang.org/appengine/v2/datastore"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/models/cursor"
	"github.com/scorpio189f/Media-Search-Bot-1/models/reservoir"
	"github.com/scorpio189f/Media-Search-Bot-1/models/sortmode"
	"github.com/scorpio189f/Media-Search-Bot-1/scheduler"
	"github.com/scorpio189f/Media-Search-Bot-1/scheduler/metadatamode"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
	"github.com/scorpio189f/Media-Search-Bot-1/utils"
)

var ErrMediaExists = errors.New("media is already indexed")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Media is keyed by FileUniqueID, which stays stable when Telegram rotates FileID.
type Media struct {
	FileID       string
	FileUniqueID string
	FileName     string
	FileType     string
	MimeType     string
	FileSize     int

	Caption         string `datastore:",noindex"`
	CaptionEntities []byte `datastore:",noindex"`
	Keywords        []string

	// Where this was indexed from. ChatID is 0 for private uploads.
	ChatID    int64
	MessageID int
	Creator   int64

	UsageCount int64
	LastUsed   time.Time
	Indexed    time.Time

	MD5Sum datastore.ByteString
}

func (m *Media) DecodeEntities() ([]tgbotapi.MessageEntity, error) {
	if len(m.CaptionEntities) == 0 {
		return nil, nil
	}
	var es []tgbotapi.MessageEntity
	if err := json.Unmarshal(m.CaptionEntities, &es); err != nil {
		return nil, errors.Wrapf(err, "caption entities of %s", m.FileUniqueID)
	}
	return es, nil
}

// Entities is DecodeEntities with corrupt rows logged and read as plain captions.
func (m *Media) Entities(ctx context.Context) []tgbotapi.MessageEntity {
	es, err := m.DecodeEntities()
	if err != nil {
		log.Warningf(ctx, "%+v", err)
		return nil
	}
	return es
}

type Origin struct {
	ChatID    int64
	MessageID int
	Creator   int64
}

func mediaKey(ctx context.Context, uniqueID string) *datastore.Key {
	return datastore.NewKey(ctx, mediaEntityKind, uniqueID, 0, nil)
}

func GetMedia(ctx context.Context, uniqueID string) (*Media, error) {
	m := new(Media)
	err := nds.Get(ctx, mediaKey(ctx, uniqueID), m)
	return m, err
}

// SaveMedia indexes f and queues a metadata refresh for it.
func SaveMedia(ctx context.Context, f *tgapi.TGFile, caption string, entities []tgbotapi.MessageEntity, origin Origin, useCaption bool) (*Media, error) {
	if f.FileUniqueID == "" {
		return nil, errors.New("file has no FileUniqueID")
	}

	es, err := json.Marshal(entities)
	if err != nil {
		return nil, errors.Wrap(err, "json.Marshal")
	}
	if len(entities) == 0 {
		es = nil
	}

	now := time.Now()
	m := &Media{
		FileID:       f.FileID,
		FileUniqueID: f.FileUniqueID,
		FileName:     f.FileName,
		FileType:     f.FileType,
		MimeType:     f.MimeType,
		FileSize:     f.FileSize,

		Caption:         caption,
		CaptionEntities: es,
		Keywords:        Keywords(f.FileName, caption, useCaption),

		ChatID:    origin.ChatID,
		MessageID: origin.MessageID,
		Creator:   origin.Creator,

		LastUsed: now,
		Indexed:  now,
	}

	err = nds.RunInTransaction(ctx, func(ctx context.Context) error {
		key := mediaKey(ctx, f.FileUniqueID)
		err := nds.Get(ctx, key, new(Media))
		if err == nil {
			return ErrMediaExists
		}
		if !errors.Is(err, datastore.ErrNoSuchEntity) {
			return err
		}

		if _, err := nds.Put(ctx, key, m); err != nil {
			return err
		}

		// New File. Schedule metadata update.
		return scheduler.ScheduleUpdateFileMetadata(ctx, []string{f.FileUniqueID}, metadatamode.Default)
	}, nil)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func DeleteMedia(ctx context.Context, uniqueID string) error {
	key := mediaKey(ctx, uniqueID)
	if err := nds.Get(ctx, key, new(Media)); err != nil {
		return err
	}
	if err := nds.Delete(ctx, key); err != nil {
		return err
	}

	if !appengine.IsDevAppServer() {
		if err := utils.DeleteFileFromGCS(ctx, uniqueID); err != nil {
			log.Warningf(ctx, "utils.DeleteFileFromGCS: %v", err)
		}
	}
	return nil
}

func IncrementUsageCounter(ctx context.Context, uniqueID string) error {
	return nds.RunInTransaction(ctx, func(ctx context.Context) error {
		m := new(Media)
		key := mediaKey(ctx, uniqueID)
		if err := nds.Get(ctx, key, m); err != nil {
			if errors.Is(err, datastore.ErrNoSuchEntity) {
				// Silently ignore this.
				return nil
			}
			return err
		}

		m.UsageCount += 1
		m.LastUsed = time.Now()

		_, err := nds.Put(ctx, key, m)
		return err
	}, nil)
}

// CountMedia counts everything when fileType is empty.
func CountMedia(ctx context.Context, fileType string) (int, error) {
	q := datastore.NewQuery(mediaEntityKind).KeysOnly()
	if fileType != "" {
		q = q.Filter("FileType =", fileType)
	}
	return q.Count(ctx)
}

func allMediaKeys(ctx context.Context) ([]*datastore.Key, error) {
	return datastore.NewQuery(mediaEntityKind).KeysOnly().GetAll(ctx, nil)
}

func AllMediaStorageKeys(ctx context.Context) ([]string, error) {
	keys, err := allMediaKeys(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, k := range keys {
		ids = append(ids, k.StringID())
	}
	return ids, nil
}

func RotateReservoir(ctx context.Context) error {
	if reservoir.TryRotateReservoir(ctx, maxItems) {
		return nil
	}

	keys, err := allMediaKeys(ctx)
	if err != nil {
		return err
	}
	log.Infof(ctx, "Refilling reservoir with %d keys", len(keys))
	return reservoir.RefillReservoir(ctx, keys)
}

const maxItems = 50

func getMulti(ctx context.Context, keys []*datastore.Key) ([]*Media, error) {
	ms := make([]*Media, len(keys))
	err := nds.GetMulti(ctx, keys, ms)
	if err == nil {
		return ms, nil
	}

	// Entries deleted since the keys were read come back as ErrNoSuchEntity.
	var multiErrors appengine.MultiError
	if !errors.As(err, &multiErrors) {
		return nil, err
	}
	if errors.Is(tryFlattenDatastoreNoSuchEntityMultiError(err), datastore.ErrNoSuchEntity) && len(multiErrors) == len(keys) {
		var found []*Media
		for i, e := range multiErrors {
			if e == nil {
				found = append(found, ms[i])
			}
		}
		return found, nil
	}
	return nil, err
}

func queryOrder(q Query) string {
	if o := q.SortMode.Order(); o != "" {
		return o
	}
	if len(q.Words) == 0 {
		return sortmode.LastUsedDesc.Order()
	}
	return sortmode.IndexedDesc.Order()
}

// SearchMedia returns up to limit matches and the offset of the next page, or "" on the last page.
func SearchMedia(ctx context.Context, q Query, lastCursor, queryID string, limit int) ([]*Media, string, error) {
	if limit <= 0 || limit > maxItems {
		limit = maxItems
	}

	if q.SortMode == sortmode.RandomDraw && q.IsEmpty() {
		keys, err := reservoir.ReadReservoir(ctx, limit)
		if err != nil {
			return nil, "", err
		}
		ms, err := getMulti(ctx, keys)
		return ms, "", err
	}

	dq := datastore.NewQuery(mediaEntityKind).KeysOnly()
	for _, w := range q.Words {
		dq = dq.Filter("Keywords =", w)
	}
	if q.FileType != "" {
		dq = dq.Filter("FileType =", q.FileType)
	}
	if q.SortMode != sortmode.RandomDraw {
		dq = dq.Order(queryOrder(q))
	}

	dq, offset := cursor.Offset(ctx, dq, lastCursor)

	t := dq.Limit(limit).Run(ctx)
	var keys []*datastore.Key
	for {
		k, err := t.Next(nil)
		if errors.Is(err, datastore.Done) {
			break
		}
		if err != nil {
			return nil, "", err
		}
		keys = append(keys, k)
	}

	if len(keys) == 0 {
		return nil, "", nil
	}

	ms, err := getMulti(ctx, keys)
	if err != nil {
		return nil, "", err
	}

	newCursor := ""
	if len(keys) == limit {
		if c, err := t.Cursor(); err == nil {
			newCursor = cursor.Store(ctx, c, queryID, offset+limit)
		}
	}
	return ms, newCursor, nil
}
