package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard vetoes a transition when it returns false.
type Guard[S ~string, E ~string] func(ctx context.Context, from S, event E, data any) bool

// Action runs a side effect during a transition. Returning an error aborts it.
type Action[S ~string, E ~string] func(ctx context.Context, from, to S, event E, data any) error

type transition[S ~string, E ~string] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Definition is an immutable transition table.
type Definition[S ~string, E ~string] struct {
	initial S
	table   map[S]map[E][]transition[S, E]
}

// Define builds a Definition with the given initial state.
func Define[S ~string, E ~string](initial S, opts ...Option[S, E]) (*Definition[S, E], error) {
	if initial == "" {
		return nil, ErrInvalidState
	}

	d := &Definition[S, E]{
		initial: initial,
		table:   make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustDefine is like Define but panics on error.
func MustDefine[S ~string, E ~string](initial S, opts ...Option[S, E]) *Definition[S, E] {
	d, err := Define(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to define state machine: %v", err))
	}
	return d
}

// Initial returns the initial state.
func (d *Definition[S, E]) Initial() S {
	return d.initial
}

// Allows reports whether the table has any edge from state on event,
// without evaluating guards.
func (d *Definition[S, E]) Allows(from S, event E) bool {
	return len(d.table[from][event]) > 0
}

// New returns a machine positioned at the initial state.
func (d *Definition[S, E]) New() *Machine[S, E] {
	return d.At(d.initial)
}

// At returns a machine positioned at state.
func (d *Definition[S, E]) At(state S) *Machine[S, E] {
	return &Machine[S, E]{def: d, current: state}
}

func (d *Definition[S, E]) add(from, to S, event E, guards []Guard[S, E], actions []Action[S, E]) error {
	if from == "" || to == "" || event == "" {
		return ErrInvalidTransition
	}
	if _, ok := d.table[from]; !ok {
		d.table[from] = make(map[E][]transition[S, E])
	}
	d.table[from][event] = append(d.table[from][event], transition[S, E]{
		to:      to,
		guards:  guards,
		actions: actions,
	})
	return nil
}

// Machine tracks the current state of one lifecycle instance.
type Machine[S ~string, E ~string] struct {
	def     *Definition[S, E]
	mu      sync.RWMutex
	current S
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire applies event and returns the resulting state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) (S, error) {
	if event == "" {
		return m.Current(), ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.def.table[m.current][event]
	if len(candidates) == 0 {
		return m.current, NewErrNoTransitionAvailable(string(m.current), string(event))
	}

	t, ok := m.pick(ctx, candidates, event, data)
	if !ok {
		return m.current, NewErrTransitionRejected(string(m.current), string(event))
	}

	for _, action := range t.actions {
		if err := action(ctx, m.current, t.to, event, data); err != nil {
			return m.current, fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.to
	return m.current, nil
}

// CanFire reports whether Fire would find an edge whose guards pass.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	if event == "" {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.pick(ctx, m.def.table[m.current][event], event, data)
	return ok
}

// Reset moves the machine back to the definition's initial state.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.def.initial
}

func (m *Machine[S, E]) pick(ctx context.Context, candidates []transition[S, E], event E, data any) (transition[S, E], bool) {
	for _, t := range candidates {
		passed := true
		for _, guard := range t.guards {
			if !guard(ctx, m.current, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return t, true
		}
	}
	return transition[S, E]{}, false
}
