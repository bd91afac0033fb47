package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axolutions/linkbio-dashboard/pkg/pkce"
	"github.com/axolutions/linkbio-dashboard/pkg/sso"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&auth.ProviderError{Code: "access_denied"}, auth.CodeAccessDenied},
		{&auth.ProviderError{Code: "server_error"}, auth.CodeOAuthCallback},
		{auth.ErrInvalidState, auth.CodeState},
		{errors.Join(auth.ErrInvalidState, auth.ErrFlowExpired), auth.CodeState},
		{auth.ErrMissingCode, auth.CodeState},
		{&sso.TokenExchangeError{StatusCode: 400}, auth.CodeOAuthCallback},
		{&sso.UserinfoError{StatusCode: 401}, auth.CodeOAuthCallback},
		{sso.ErrInvalidProfile, auth.CodeOAuthCallback},
		{pkce.ErrEntropyUnavailable, auth.CodeOAuthSignin},
		{errors.New("boom"), auth.CodeDefault},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, auth.ErrorCode(tt.err), "%v", tt.err)
	}
}

func TestProviderError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "auth: provider returned access_denied", (&auth.ProviderError{Code: "access_denied"}).Error())
	assert.Equal(t, "auth: provider returned invalid_request: bad scope",
		(&auth.ProviderError{Code: "invalid_request", Description: "bad scope"}).Error())
}
