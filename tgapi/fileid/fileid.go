// Package fileid turns Bot API file identifiers into MTProto document handles.
package fileid

import (
	"github.com/cockroachdb/errors"
	tdfileid "github.com/gotd/td/fileid"
	"github.com/gotd/td/tg"
)

// ErrInvalidFileID marks every failure to turn a string into a usable file handle.
var ErrInvalidFileID = errors.New("invalid file id")

func invalid(err error, s string) error {
	return errors.Mark(errors.Wrapf(err, "file id %q", s), ErrInvalidFileID)
}

// isPhoto reports whether t is stored as a photo rather than a document.
func isPhoto(t tdfileid.Type) bool {
	switch t {
	case tdfileid.Thumbnail, tdfileid.ProfilePhoto, tdfileid.Photo, tdfileid.EncryptedThumbnail, tdfileid.Wallpaper:
		return true
	}
	return false
}

// InputDocument resolves a file_id into the document handle used by inline results.
func InputDocument(s string) (*tg.InputDocument, error) {
	f, err := tdfileid.DecodeFileID(s)
	if err != nil {
		return nil, invalid(err, s)
	}

	switch {
	case f.Type == tdfileid.Thumbnail || f.Type == tdfileid.ProfilePhoto:
		return nil, invalid(errors.New("this file id can only be used for download"), s)
	case f.URL != "":
		return nil, invalid(errors.New("web locations cannot be sent as documents"), s)
	case isPhoto(f.Type):
		return nil, invalid(errors.Newf("expected a document, got %s", f.Type), s)
	}

	return &tg.InputDocument{
		ID:            f.ID,
		AccessHash:    f.AccessHash,
		FileReference: f.FileReference,
	}, nil
}
