// Package statemachine provides a small, typed finite-state-machine used to
// model the lifecycles in the authentication subsystem: token freshness,
// session projection status and sign-in flow stages.
//
// A Definition is an immutable transition table keyed by string-backed state
// and event types. It is built once with functional options and shared. A
// Machine is a cheap, concurrency-safe cursor over a Definition, created either
// at the initial state (New) or at a persisted state (At), so a record loaded
// from storage can resume its lifecycle where it left off.
//
// # Usage
//
//	type Stage string
//	type Trigger string
//
//	var flow = statemachine.MustDefine[Stage, Trigger]("initiated",
//	    statemachine.WithTransition[Stage, Trigger]("initiated", "callback_received", "callback"),
//	    statemachine.WithTransition[Stage, Trigger]("callback_received", "exchanged", "exchange"),
//	)
//
//	m := flow.At(stored.Stage)
//	next, err := m.Fire(ctx, "callback", nil)
//
// # Guards and Actions
//
// Several transitions may share a from/event pair; the first whose guards all
// pass wins. Actions run in order after guards and before the state changes.
// An action error aborts the transition and leaves the machine untouched.
//
// # Errors
//
// Fire returns *ErrNoTransitionAvailable when the table has no edge for the
// current state and event, and *ErrTransitionRejected when every candidate
// edge was vetoed by a guard. Use IsNoTransitionAvailableError and
// IsTransitionRejectedError to tell them apart.
package statemachine
