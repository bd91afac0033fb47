package statemachine

// Option configures a Definition during construction.
type Option[S ~string, E ~string] func(*Definition[S, E]) error

// TransitionOption attaches guards or actions to a single transition.
type TransitionOption[S ~string, E ~string] func(*transitionConfig[S, E])

type transitionConfig[S ~string, E ~string] struct {
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// WithTransition adds an edge from -> to on event.
func WithTransition[S ~string, E ~string](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(d *Definition[S, E]) error {
		cfg := &transitionConfig[S, E]{}
		for _, opt := range opts {
			opt(cfg)
		}
		return d.add(from, to, event, cfg.guards, cfg.actions)
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard[S ~string, E ~string](guard Guard[S, E]) TransitionOption[S, E] {
	return func(cfg *transitionConfig[S, E]) {
		if guard != nil {
			cfg.guards = append(cfg.guards, guard)
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction[S ~string, E ~string](action Action[S, E]) TransitionOption[S, E] {
	return func(cfg *transitionConfig[S, E]) {
		if action != nil {
			cfg.actions = append(cfg.actions, action)
		}
	}
}
