package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally. States are appended to the
// arena and referenced by index; dangling targets are InvalidState until
// patched. The Compiler is the only intended caller, but the API is
// usable directly for hand-built automata in tests.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

// AddMatch adds the accepting state and returns its ID.
// Build rejects automata with more or fewer than one of these.
func (b *Builder) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateMatch,
	})
	return id
}

// AddByteRange adds a state that consumes a byte in [lo, hi].
// For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateByteRange,
		lo:   lo,
		hi:   hi,
		next: next,
	})
	return id
}

// AddSparse adds a state with multiple byte range transitions (character class).
// The transitions slice is copied to avoid aliasing issues and must be
// sorted by Lo with no overlaps.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	id := StateID(len(b.states))
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{
		id:          id,
		kind:        StateSparse,
		transitions: trans,
	})
	return id
}

// AddSplit adds a state with epsilon transitions to two states
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:    id,
		kind:  StateSplit,
		left:  left,
		right: right,
	})
	return id
}

// AddEpsilon adds a state with a single epsilon transition
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateEpsilon,
		next: next,
	})
	return id
}

// AddLook adds a zero-width assertion state
func (b *Builder) AddLook(look Look, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateLook,
		look: look,
		next: next,
	})
	return id
}

// AddFail adds a dead state with no transitions
func (b *Builder) AddFail() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateFail,
	})
	return id
}

// Patch updates a state's single target. This handles forward references
// during compilation (fragment exits wired to the next fragment's entry).
// Only states with one 'next' target can be patched.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateLook:
		s.next = target
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// SetStart sets the starting state for the NFA
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
//   - start state is set and in bounds
//   - every transition target is a valid index in the arena
//   - exactly one accepting state exists
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: b.start,
		}
	}

	accepts := 0
	for i := range b.states {
		s := &b.states[i]
		id := StateID(i)
		switch s.kind {
		case StateMatch:
			accepts++
		case StateByteRange, StateEpsilon, StateLook:
			if int(s.next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid next state %d", s.next),
					StateID: id,
				}
			}
		case StateSplit:
			if int(s.left) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid left state %d", s.left),
					StateID: id,
				}
			}
			if int(s.right) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid right state %d", s.right),
					StateID: id,
				}
			}
		case StateSparse:
			for j, t := range s.transitions {
				if int(t.Next) >= len(b.states) {
					return &BuildError{
						Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next),
						StateID: id,
					}
				}
			}
		}
	}

	if accepts != 1 {
		return &BuildError{
			Message: fmt.Sprintf("expected exactly one accepting state, found %d", accepts),
			StateID: InvalidState,
		}
	}

	return nil
}

// Build validates and finalizes the constructed NFA
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	accept := InvalidState
	for i := range b.states {
		if b.states[i].kind == StateMatch {
			accept = StateID(i)
			break
		}
	}

	return &NFA{
		states: b.states,
		start:  b.start,
		accept: accept,
	}, nil
}
