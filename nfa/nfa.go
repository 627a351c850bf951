// Package nfa compiles parsed patterns into Thompson NFAs and executes
// them with a PikeVM.
//
// The automaton is an arena of states referenced only by integer index,
// so the Star loop's cycles never become ownership cycles. An NFA is
// immutable once built and safe to share across concurrent searches;
// per-search mutable state lives in SimState.
package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state within its automaton's arena.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which
// transitions are valid.
type StateKind uint8

const (
	// StateMatch is the accepting state. Each automaton has exactly one.
	StateMatch StateKind = iota

	// StateByteRange consumes a single byte in [lo, hi]
	StateByteRange

	// StateSparse consumes a byte matching one of several ranges (character class)
	StateSparse

	// StateSplit is an epsilon transition to two states (alternation, quantifiers)
	StateSplit

	// StateEpsilon is an epsilon transition to one state
	StateEpsilon

	// StateLook is a zero-width assertion checked against the current
	// offset, not a consumed symbol
	StateLook

	// StateFail is a dead state with no transitions (empty negated class)
	StateFail
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateLook:
		return "Look"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Look identifies a zero-width assertion kind.
type Look uint8

const (
	// LookStartText asserts the current offset is 0 ('^')
	LookStartText Look = iota

	// LookEndText asserts the current offset is the end of input ('$')
	LookEndText
)

// String returns a human-readable representation of the Look kind
func (l Look) String() string {
	switch l {
	case LookStartText:
		return "StartText"
	case LookEndText:
		return "EndText"
	default:
		return fmt.Sprintf("Unknown(%d)", l)
	}
}

// Transition is a byte range and target state for sparse transitions.
type Transition struct {
	Lo   byte    // inclusive lower bound
	Hi   byte    // inclusive upper bound
	Next StateID // target state
}

// State is a single NFA state. The kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// ByteRange: [lo, hi]; next also serves Epsilon and Look
	lo, hi byte
	next   StateID

	// Sparse: sorted, non-overlapping byte ranges
	transitions []Transition

	// Split: epsilon transitions to two states
	left, right StateID

	// Look: assertion kind
	look Look
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// ByteRange returns the byte range and target for ByteRange states
func (s *State) ByteRange() (lo, hi byte, next StateID) {
	return s.lo, s.hi, s.next
}

// Transitions returns the sparse transitions for Sparse states.
// The slice is sorted by Lo and must not be modified.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Split returns the two epsilon targets for Split states
func (s *State) Split() (left, right StateID) {
	return s.left, s.right
}

// Epsilon returns the target for Epsilon states
func (s *State) Epsilon() StateID {
	return s.next
}

// Look returns the assertion kind and target for Look states
func (s *State) Look() (Look, StateID) {
	return s.look, s.next
}

// NFA is a compiled automaton: an append-only arena of states plus the
// designated start and accept indices. It is read-only after Build and
// may be shared freely across goroutines.
type NFA struct {
	states []State
	start  StateID
	accept StateID
}

// States returns the number of states in the automaton
func (n *NFA) States() int {
	return len(n.states)
}

// Start returns the designated start state
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the single accepting state
func (n *NFA) Accept() StateID {
	return n.accept
}

// State returns the state with the given ID, or nil if out of bounds
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsAccept returns true if id is the accepting state
func (n *NFA) IsAccept(id StateID) bool {
	return id == n.accept
}
