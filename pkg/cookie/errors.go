package cookie

import "errors"

// Configuration errors, returned by New.
var (
	ErrNoSecret       = errors.New("cookie.missing_session_secret")
	ErrSecretTooShort = errors.New("cookie.session_secret_too_short")
)

// Read errors. A tampered or rotated-out cookie is treated like a missing
// one by the session transport and the flow store.
var (
	ErrCookieNotFound   = errors.New("cookie.not_found")
	ErrInvalidFormat    = errors.New("cookie.malformed")
	ErrInvalidSignature = errors.New("cookie.bad_signature")
	ErrDecryptionFailed = errors.New("cookie.undecryptable")
	ErrValueTooLarge    = errors.New("cookie.value_too_long")
)
