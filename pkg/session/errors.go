package session

import "errors"

var (
	ErrInvalidSession   = errors.New("session.invalid")
	ErrSessionNotFound  = errors.New("session.not_found")
	ErrStoreUnavailable = errors.New("session.store_unavailable")
	ErrNoStore          = errors.New("session.no_store")
	ErrNoTransport      = errors.New("session.no_transport")
)
