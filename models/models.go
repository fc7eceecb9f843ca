package models

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/appengine/v2"
	"google.golang.org/appengine/v2/datastore"
)

const (
	mediaEntityKind = "Media"
)

// If err is a MultiError, and everything inside is ErrNoSuchEntity, return as ErrNoSuchEntity
func tryFlattenDatastoreNoSuchEntityMultiError(err error) error {
	var multiErrors appengine.MultiError
	if errors.As(err, &multiErrors) {
		for _, e := range multiErrors {
			if e != nil && !errors.Is(e, datastore.ErrNoSuchEntity) {
				return err
			}
		}
		return datastore.ErrNoSuchEntity
	}
	// Not a MultiError, return back
	return err
}
