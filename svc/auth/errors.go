package auth

import (
	"errors"

	"github.com/axolutions/linkbio-dashboard/pkg/pkce"
	"github.com/axolutions/linkbio-dashboard/pkg/sso"
)

var (
	ErrInvalidState         = errors.New("auth.invalid_state")
	ErrMissingCode          = errors.New("auth.missing_code")
	ErrFlowNotFound         = errors.New("auth.flow_not_found")
	ErrFlowExpired          = errors.New("auth.flow_expired")
	ErrFlowConsumed         = errors.New("auth.flow_consumed")
	ErrFlowStoreUnavailable = errors.New("auth.flow_store_unavailable")
	ErrInvalidBaseURL       = errors.New("auth.invalid_base_url")
	ErrMockedAuthForbidden  = errors.New("auth.mocked_auth_forbidden")
	ErrInvalidFixture       = errors.New("auth.invalid_fixture")
)

// ProviderError is an error the provider reported on the callback URL,
// e.g. access_denied when the user declines consent.
type ProviderError struct {
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return "auth: provider returned " + e.Code + ": " + e.Description
	}
	return "auth: provider returned " + e.Code
}

func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// Error codes carried to the error page in the ?error= query parameter.
const (
	CodeState         = "State"
	CodeAccessDenied  = "AccessDenied"
	CodeOAuthCallback = "OAuthCallback"
	CodeOAuthSignin   = "OAuthSignin"
	CodeDefault       = "Default"
)

// ErrorCode classifies a sign-in failure for the error page.
func ErrorCode(err error) string {
	var pe *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &pe):
		if pe.Code == "access_denied" {
			return CodeAccessDenied
		}
		return CodeOAuthCallback
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrMissingCode):
		return CodeState
	case sso.IsTokenExchangeError(err), sso.IsUserinfoError(err), errors.Is(err, sso.ErrInvalidProfile):
		return CodeOAuthCallback
	case errors.Is(err, pkce.ErrEntropyUnavailable), errors.Is(err, ErrFlowStoreUnavailable):
		return CodeOAuthSignin
	default:
		return CodeDefault
	}
}
