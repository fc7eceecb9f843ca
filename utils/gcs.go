package utils

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"google.golang.org/appengine/v2"

	"github.com/scorpio189f/Media-Search-Bot-1/config"
)

const gcsFilePrefix = "TgFileV3/"

func gcsBucket(ctx context.Context) string {
	if b := config.Get().GCSBucket; b != "" {
		return b
	}
	return appengine.DefaultVersionHostname(ctx)
}

// GCSObjectName is where the archived copy of a file lives.
func GCSObjectName(fileUniqueID string) string {
	return gcsFilePrefix + fileUniqueID
}

func StoreFileToGCS(ctx context.Context, fileUniqueID, mimeType string, bytes []byte) error {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return errors.Wrap(err, "storage.NewClient")
	}
	defer sc.Close()

	w := sc.Bucket(gcsBucket(ctx)).Object(GCSObjectName(fileUniqueID)).NewWriter(ctx)
	w.ContentType = mimeType
	if _, err = w.Write(bytes); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, "writing %s", fileUniqueID)
	}
	return w.Close()
}

func DeleteFileFromGCS(ctx context.Context, fileUniqueID string) error {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return errors.Wrap(err, "storage.NewClient")
	}
	defer sc.Close()

	err = sc.Bucket(gcsBucket(ctx)).Object(GCSObjectName(fileUniqueID)).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}
