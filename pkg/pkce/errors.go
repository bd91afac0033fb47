package pkce

import "errors"

var (
	// ErrEntropyUnavailable indicates the system CSPRNG could not be read.
	ErrEntropyUnavailable = errors.New("pkce.entropy_unavailable")

	// ErrInvalidVerifier indicates a verifier does not satisfy RFC 7636 section 4.1.
	ErrInvalidVerifier = errors.New("pkce.invalid_verifier")
)
