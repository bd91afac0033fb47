package userdata

import "errors"

var (
	ErrNotFound         = errors.New("userdata.not_found")
	ErrEmptySubject     = errors.New("userdata.empty_subject")
	ErrLookupFailed     = errors.New("userdata.lookup_failed")
	ErrUnknownDriver    = errors.New("userdata.unknown_driver")
	ErrStoreNotMigrated = errors.New("userdata.store_not_migrated")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
