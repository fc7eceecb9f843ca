package models

import (
	"context"
	"crypto/md5"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/qedus/nds"
	"google.golang.org/appengine/v2"
	"google.golang.org/appengine/v2/datastore"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/scheduler/metadatamode"
	"github.com/scorpio189f/Media-Search-Bot-1/tgapi"
	"github.com/scorpio189f/Media-Search-Bot-1/utils"
)

var ErrUnknownMetadataMode = errors.New("unknown MetadataMode")

var metadataUpdaters = map[metadatamode.MetadataMode]func(context.Context, string, *Media) error{
	metadatamode.Default: func(ctx context.Context, oldStorageKey string, m *Media) error {
		return updateFileMetadata(ctx, oldStorageKey, m, !appengine.IsDevAppServer())
	},
	metadatamode.NoArchive: func(ctx context.Context, oldStorageKey string, m *Media) error {
		return updateFileMetadata(ctx, oldStorageKey, m, false)
	},
}

func UpdateFileMetadata(ctx context.Context, oldStorageKey string, mode metadatamode.MetadataMode) error {
	updater, ok := metadataUpdaters[mode]
	if !ok {
		return errors.Wrapf(ErrUnknownMetadataMode, "%q", mode)
	}

	m := new(Media)
	if err := nds.Get(ctx, mediaKey(ctx, oldStorageKey), m); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			// Deleted before the task ran.
			return nil
		}
		return err
	}

	return updater(ctx, oldStorageKey, m)
}

func updateFileMetadata(ctx context.Context, oldStorageKey string, m *Media, archive bool) error {
	oldKey := mediaKey(ctx, oldStorageKey)

	file, b, err := tgapi.FetchFileInfo(ctx, m.FileID)
	if err != nil {
		return err
	}

	newFileID := file.FileID
	fileUniqueID := file.FileUniqueID

	if newFileID != m.FileID {
		log.Infof(ctx, "Detected FileID change %s -> %s for FileUniqueID %s", m.FileID, newFileID, fileUniqueID)
	}

	if archive {
		if err := utils.StoreFileToGCS(ctx, fileUniqueID, m.MimeType, b); err != nil {
			return err
		}
	}

	sum := md5.Sum(b)
	log.Infof(ctx, "File %s: %x (%s)", fileUniqueID, sum, humanize.Bytes(uint64(file.FileSize)))

	return nds.RunInTransaction(ctx, func(ctx context.Context) error {
		// Get again so we don't race.
		if err := nds.Get(ctx, oldKey, m); err != nil {
			if errors.Is(err, datastore.ErrNoSuchEntity) {
				return nil
			}
			return err
		}

		m.FileUniqueID = fileUniqueID
		m.FileID = newFileID
		m.MD5Sum = sum[:]
		m.FileSize = file.FileSize

		if oldStorageKey != fileUniqueID {
			if err := nds.Delete(ctx, oldKey); err != nil {
				return err
			}
		}
		_, err := nds.Put(ctx, mediaKey(ctx, fileUniqueID), m)
		return err
	}, &datastore.TransactionOptions{XG: true})
}
