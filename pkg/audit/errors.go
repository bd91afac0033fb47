package audit

import "errors"

var (
	ErrEmptyAction         = errors.New("audit.empty_action")
	ErrStorageNotAvailable = errors.New("audit.storage_not_available")
	ErrUnknownSink         = errors.New("audit.unknown_sink")
)
