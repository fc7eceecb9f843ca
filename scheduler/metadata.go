package scheduler

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"
	"google.golang.org/appengine/v2/taskqueue"

	"github.com/scorpio189f/Media-Search-Bot-1/paths"
	"github.com/scorpio189f/Media-Search-Bot-1/scheduler/metadatamode"
)

const updateFileMetadataQueue = "update-file-metadata"

func newUpdateFileMetadataTask(storageKey string, mode metadatamode.MetadataMode) *taskqueue.Task {
	return taskqueue.NewPOSTTask(paths.UpdateFileMetadata, url.Values{
		"id":   []string{storageKey},
		"mode": []string{mode.ToString()},
	})
}

// ScheduleUpdateFileMetadata queues one metadata refresh per storage key.
func ScheduleUpdateFileMetadata(ctx context.Context, storageKeys []string, mode metadatamode.MetadataMode) error {
	var ts []*taskqueue.Task
	for _, id := range storageKeys {
		ts = append(ts, newUpdateFileMetadataTask(id, mode))
	}

	for _, batch := range batchize(ts) {
		if _, err := taskqueue.AddMulti(ctx, batch, updateFileMetadataQueue); err != nil {
			return errors.Wrapf(err, "queueing %d tasks", len(batch))
		}
	}
	return nil
}
