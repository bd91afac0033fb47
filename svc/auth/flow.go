package auth

import (
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/statemachine"
)

// Stage is the progress of one sign-in attempt.
type Stage string

const (
	StageInitiated        Stage = "INITIATED"
	StageCallbackReceived Stage = "CALLBACK_RECEIVED"
	StageExchanged        Stage = "EXCHANGED"
)

// FlowEvent advances a Flow.
type FlowEvent string

const (
	EventCallback FlowEvent = "callback"
	EventExchange FlowEvent = "exchange"
)

// FlowLifecycle is the only legal path of a sign-in attempt.
var FlowLifecycle = statemachine.MustDefine(StageInitiated,
	statemachine.WithTransition(StageInitiated, StageCallbackReceived, EventCallback),
	statemachine.WithTransition(StageCallbackReceived, StageExchanged, EventExchange),
)

// Flow is the state kept between the authorize redirect and the callback.
// The verifier never leaves the server side of the flow store.
type Flow struct {
	State       string    `json:"state"`
	Verifier    string    `json:"verifier"`
	CallbackURL string    `json:"callback_url"`
	RedirectURI string    `json:"redirect_uri"`
	CreatedAt   time.Time `json:"created_at"`
	Stage       Stage     `json:"stage"`
}

// Expired reports whether the flow is older than ttl.
func (f Flow) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(f.CreatedAt) > ttl
}
