package sso

import (
	"errors"
	"fmt"
)

var (
	ErrMissingClientID = errors.New("sso.missing_client_id")
	ErrInvalidBaseURL  = errors.New("sso.invalid_base_url")
	ErrInvalidProfile  = errors.New("sso.invalid_profile")
	ErrEmptyToken      = errors.New("sso.empty_token")
)

// TokenExchangeError reports that the provider rejected an authorization code.
type TokenExchangeError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

func (e *TokenExchangeError) Error() string {
	return "token exchange failed: " + describe(e.StatusCode, e.Code, e.Description, e.Err)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// Message is the text shown on the sign-in error page.
func (e *TokenExchangeError) Message() string {
	return userMessage(e.Code, e.Description, "Token request failed")
}

// UserinfoError reports that the provider rejected the access token on the
// userinfo endpoint.
type UserinfoError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UserinfoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("userinfo request failed: %v", e.Err)
	}
	return fmt.Sprintf("userinfo request failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *UserinfoError) Unwrap() error { return e.Err }

// RefreshError reports a failed refresh_token grant.
type RefreshError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

func (e *RefreshError) Error() string {
	return "token refresh failed: " + describe(e.StatusCode, e.Code, e.Description, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

// RevocationError reports a failed revoke call. It is logged and never
// returned to callers.
type RevocationError struct {
	StatusCode int
	Err        error
}

func (e *RevocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token revocation failed: %v", e.Err)
	}
	return fmt.Sprintf("token revocation failed: status %d", e.StatusCode)
}

func (e *RevocationError) Unwrap() error { return e.Err }

func IsTokenExchangeError(err error) bool {
	var e *TokenExchangeError
	return errors.As(err, &e)
}

func IsUserinfoError(err error) bool {
	var e *UserinfoError
	return errors.As(err, &e)
}

func IsRefreshError(err error) bool {
	var e *RefreshError
	return errors.As(err, &e)
}

func IsRevocationError(err error) bool {
	var e *RevocationError
	return errors.As(err, &e)
}

func describe(status int, code, description string, err error) string {
	switch {
	case description != "":
		return description
	case code != "":
		return code
	case err != nil:
		return err.Error()
	default:
		return fmt.Sprintf("status %d", status)
	}
}

func userMessage(code, description, fallback string) string {
	if description != "" {
		return description
	}
	if code != "" {
		return code
	}
	return fallback
}
