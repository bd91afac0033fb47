package tokenset

import (
	"context"

	"github.com/axolutions/linkbio-dashboard/pkg/statemachine"
)

// State is the freshness of a TokenSet.
type State string

const (
	StateFresh      State = "FRESH"
	StateExpired    State = "EXPIRED"
	StateRefreshing State = "REFRESHING"
	StateInvalid    State = "INVALID"
)

// Event drives lifecycle transitions.
type Event string

const (
	EventExpire    Event = "expire"
	EventRefresh   Event = "refresh"
	EventRefreshed Event = "refreshed"
	EventFail      Event = "fail"
)

// Lifecycle is the token freshness state machine. A refresh only reaches
// FRESH when the event carries a TokenSet with an access token.
var Lifecycle = statemachine.MustDefine(StateFresh,
	statemachine.WithTransition(StateFresh, StateExpired, EventExpire),
	statemachine.WithTransition(StateExpired, StateRefreshing, EventRefresh),
	statemachine.WithTransition(StateRefreshing, StateFresh, EventRefreshed,
		statemachine.WithGuard(hasAccessToken)),
	statemachine.WithTransition(StateRefreshing, StateInvalid, EventFail),
	statemachine.WithTransition(StateExpired, StateInvalid, EventFail),
)

func hasAccessToken(_ context.Context, _ State, _ Event, data any) bool {
	ts, ok := data.(TokenSet)
	return ok && ts.AccessToken != ""
}
