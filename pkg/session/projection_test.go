package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/identity"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
	"github.com/axolutions/linkbio-dashboard/pkg/tokenset"
)

type mockEnricher struct {
	mock.Mock
}

func (m *mockEnricher) Lookup(ctx context.Context, subject string) (identity.Enrichment, bool, error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(identity.Enrichment), args.Bool(1), args.Error(2)
}

func TestProjector_Project(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()

	t.Run("nil session is unauthenticated", func(t *testing.T) {
		t.Parallel()
		v := session.NewProjector(nil, nil).Project(ctx, nil)
		assert.Equal(t, session.StatusUnauthenticated, v.Status)
		assert.Nil(t, v.Identity)
		assert.False(t, v.IsAuthenticated())
	})

	t.Run("valid session is authenticated", func(t *testing.T) {
		t.Parallel()
		s := session.NewSession(testIdentity(), tokenset.TokenSet{AccessToken: "at"}, time.Hour, now)

		v := session.NewProjector(nil, nil).Project(ctx, s)
		assert.Equal(t, session.StatusAuthenticated, v.Status)
		require.NotNil(t, v.Identity)
		assert.Equal(t, "sub-1", v.Identity.Subject)
		assert.Equal(t, "at", v.AccessToken)
		assert.Equal(t, s.ID, v.SessionID)
		assert.Equal(t, s.ExpiresAt, v.Expires)
		assert.Empty(t, v.Error)
		assert.True(t, v.IsAuthenticated())
	})

	t.Run("sticky refresh error surfaces as ERROR", func(t *testing.T) {
		t.Parallel()
		tokens := tokenset.TokenSet{AccessToken: "at"}.Invalidated()
		s := session.NewSession(testIdentity(), tokens, time.Hour, now)

		v := session.NewProjector(nil, nil).Project(ctx, s)
		assert.Equal(t, session.StatusError, v.Status)
		assert.Equal(t, tokenset.RefreshAccessTokenError, v.Error)
		assert.True(t, v.NeedsRenewal())
		assert.True(t, v.IsAuthenticated(), "identity remains available for display")
	})

	t.Run("enrichment merges profile without touching grants", func(t *testing.T) {
		t.Parallel()
		verified := true
		e := &mockEnricher{}
		e.On("Lookup", mock.Anything, "sub-1").Return(identity.Enrichment{
			DisplayName:   "Jane Doe",
			EmailVerified: &verified,
			Profile:       identity.Profile{Status: "active", SiteBranchName: "jane"},
		}, true, nil).Once()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{}, time.Hour, now)
		v := session.NewProjector(e, nil).Project(ctx, s)

		require.NotNil(t, v.Identity)
		assert.Equal(t, "Jane Doe", v.Identity.DisplayName)
		assert.Equal(t, "jane@example.com", v.Identity.Email)
		assert.True(t, v.Identity.EmailVerified)
		require.NotNil(t, v.Identity.Profile)
		assert.Equal(t, "jane", v.Identity.Profile.SiteBranchName)
		assert.Equal(t, testIdentity().ProductGrants, v.Identity.ProductGrants)
		e.AssertExpectations(t)
	})

	t.Run("enrichment failure keeps oauth identity", func(t *testing.T) {
		t.Parallel()
		e := &mockEnricher{}
		e.On("Lookup", mock.Anything, "sub-1").Return(identity.Enrichment{}, false, errors.New("db down")).Once()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{}, time.Hour, now)
		v := session.NewProjector(e, nil).Project(ctx, s)

		assert.Equal(t, session.StatusAuthenticated, v.Status)
		assert.Equal(t, "Jane", v.Identity.DisplayName)
		assert.Nil(t, v.Identity.Profile)
	})

	t.Run("unknown subject in user store", func(t *testing.T) {
		t.Parallel()
		e := &mockEnricher{}
		e.On("Lookup", mock.Anything, "sub-1").Return(identity.Enrichment{}, false, nil).Once()

		s := session.NewSession(testIdentity(), tokenset.TokenSet{}, time.Hour, now)
		v := session.NewProjector(e, nil).Project(ctx, s)
		assert.Nil(t, v.Identity.Profile)
	})
}

func TestView_SignedOut(t *testing.T) {
	t.Parallel()

	for _, status := range []session.Status{
		session.StatusLoading,
		session.StatusAuthenticated,
		session.StatusError,
		session.StatusUnauthenticated,
	} {
		id := testIdentity()
		v := session.View{Status: status, Identity: &id, AccessToken: "at"}.SignedOut(context.Background())
		assert.Equal(t, session.StatusUnauthenticated, v.Status, status)
		assert.Nil(t, v.Identity)
		assert.Empty(t, v.AccessToken)
	}
}

func TestProjection_Transitions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, session.StatusLoading, session.Projection.Initial())
	assert.True(t, session.Projection.Allows(session.StatusAuthenticated, session.EventFailed))
	assert.False(t, session.Projection.Allows(session.StatusUnauthenticated, session.EventResolved))
	assert.False(t, session.Projection.Allows(session.StatusLoading, session.EventFailed))
}

func TestViewFromContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, session.StatusUnauthenticated, session.ViewFromContext(context.Background()).Status)

	ctx := session.WithView(context.Background(), session.View{Status: session.StatusAuthenticated, SessionID: "s1"})
	assert.Equal(t, "s1", session.ViewFromContext(ctx).SessionID)

	attr, ok := session.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "session_id", attr.Key)
	assert.Equal(t, "s1", attr.Value.String())
}
