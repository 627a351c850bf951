package nfa

import (
	"sort"

	"github.com/coregx/rematch/internal/sparse"
)

// PikeVM executes an NFA by multi-state simulation: it maintains the
// epsilon-closure of all currently active states and advances the whole
// set one input byte at a time. No path is ever retried, so matching is
// O(len(pattern) * len(input)) regardless of how adversarial the
// pattern is.
//
// Thread safety: the PikeVM itself (the NFA) is immutable after
// creation. The methods without an explicit state use internal scratch
// space and are NOT safe for concurrent use; the *WithState variants are
// safe provided each goroutine supplies its own SimState.
type PikeVM struct {
	nfa *NFA

	// internalState backs the convenience methods
	internalState SimState
}

// SimState holds the mutable per-search state for a PikeVM: the current
// and next active-state sets, per-state match start offsets, and the
// explicit stack used for epsilon-closure traversal. It is created
// fresh (or pooled) per search and never persisted.
type SimState struct {
	current *sparse.Set
	next    *sparse.Set

	// starts[id] is the match start offset carried by the thread
	// occupying state id in current; nextStarts is the same for next.
	// One array per generation: a state can be live in both sets at
	// once, and seeding the next generation must not clobber a start
	// still pending in the current one.
	starts     []int
	nextStarts []int

	// stack drives loop-based epsilon closure; only split branches are
	// pushed, linear chains are followed in place
	stack []StateID
}

// Match is a matched span: Start is inclusive, End exclusive.
type Match struct {
	Start int
	End   int
}

// Len returns the length of the matched span
func (m Match) Len() int {
	return m.End - m.Start
}

// NewPikeVM creates a new PikeVM for executing the given NFA
func NewPikeVM(nfa *NFA) *PikeVM {
	p := &PikeVM{nfa: nfa}
	p.InitState(&p.internalState)
	return p
}

// NewSimState creates an empty SimState. It must be initialized with
// PikeVM.InitState before use.
func NewSimState() *SimState {
	return &SimState{}
}

// InitState sizes a SimState for this PikeVM's automaton
func (p *PikeVM) InitState(st *SimState) {
	capacity := p.nfa.States()
	if capacity < 16 {
		capacity = 16
	}
	st.current = sparse.NewSet(uint32(capacity))
	st.next = sparse.NewSet(uint32(capacity))
	st.starts = make([]int, capacity)
	st.nextStarts = make([]int, capacity)
	st.stack = make([]StateID, 0, capacity)
}

// NumStates returns the number of NFA states
func (p *PikeVM) NumStates() int {
	return p.nfa.States()
}

// Matches reports whether the automaton accepts the whole haystack:
// simulation starts at offset 0 and the accept state must be active
// after the final byte. Not safe for concurrent use; see MatchesWithState.
func (p *PikeVM) Matches(haystack []byte) bool {
	return p.MatchesWithState(&p.internalState, haystack)
}

// MatchesWithState is the concurrency-safe form of Matches
func (p *PikeVM) MatchesWithState(st *SimState, haystack []byte) bool {
	st.current.Clear()
	st.next.Clear()

	p.addThread(st, st.current, st.starts, p.nfa.Start(), 0, haystack, 0)

	for pos := 0; pos < len(haystack); pos++ {
		if st.current.Len() == 0 {
			// No transitions are left to fire; the set can never refill
			return false
		}

		b := haystack[pos]
		for _, v := range st.current.Values() {
			p.step(st, StateID(v), b, haystack, pos)
		}

		st.current, st.next = st.next, st.current
		st.starts, st.nextStarts = st.nextStarts, st.starts
		st.next.Clear()
	}

	return st.current.Contains(uint32(p.nfa.Accept()))
}

// Search finds the leftmost-longest match in the haystack.
// Not safe for concurrent use; see SearchWithState.
func (p *PikeVM) Search(haystack []byte) (Match, bool) {
	return p.SearchAtWithState(&p.internalState, haystack, 0)
}

// SearchWithState is the concurrency-safe form of Search
func (p *PikeVM) SearchWithState(st *SimState, haystack []byte) (Match, bool) {
	return p.SearchAtWithState(st, haystack, 0)
}

// SearchAtWithState finds the leftmost-longest match beginning at or
// after offset at.
//
// A fresh thread is injected at each position until a match is found;
// each thread carries the offset it started from, and threads reaching
// the same state keep the smaller (more leftward) start. Among matches
// with the same start, later (longer) ones win.
func (p *PikeVM) SearchAtWithState(st *SimState, haystack []byte, at int) (Match, bool) {
	if at < 0 || at > len(haystack) {
		return Match{}, false
	}

	st.current.Clear()
	st.next.Clear()

	accept := uint32(p.nfa.Accept())
	bestStart, bestEnd := -1, -1

	for pos := at; ; pos++ {
		if bestStart < 0 {
			p.addThread(st, st.current, st.starts, p.nfa.Start(), pos, haystack, pos)
		}

		for _, v := range st.current.Values() {
			if v != accept {
				continue
			}
			s := st.starts[v]
			if bestStart < 0 || s < bestStart || (s == bestStart && pos > bestEnd) {
				bestStart, bestEnd = s, pos
			}
		}

		if pos >= len(haystack) {
			break
		}
		if st.current.Len() == 0 && bestStart >= 0 {
			break
		}

		b := haystack[pos]
		for _, v := range st.current.Values() {
			p.step(st, StateID(v), b, haystack, pos)
		}

		st.current, st.next = st.next, st.current
		st.starts, st.nextStarts = st.nextStarts, st.starts
		st.next.Clear()
	}

	if bestStart < 0 {
		return Match{}, false
	}
	return Match{Start: bestStart, End: bestEnd}, true
}

// step fires the symbol transition of one active state against byte b at
// offset pos and seeds the next generation with the epsilon-closure of
// the target. Only consuming states participate; epsilon plumbing was
// already flattened into the set by addThread.
func (p *PikeVM) step(st *SimState, sid StateID, b byte, haystack []byte, pos int) {
	s := p.nfa.State(sid)
	switch s.Kind() {
	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if b >= lo && b <= hi {
			p.addThread(st, st.next, st.nextStarts, next, st.starts[sid], haystack, pos+1)
		}

	case StateSparse:
		if next, ok := sparseTarget(s.Transitions(), b); ok {
			p.addThread(st, st.next, st.nextStarts, next, st.starts[sid], haystack, pos+1)
		}
	}
}

// sparseTarget binary-searches sorted, non-overlapping transitions for
// the range containing b.
func sparseTarget(trs []Transition, b byte) (StateID, bool) {
	i := sort.Search(len(trs), func(i int) bool {
		return trs[i].Hi >= b
	})
	if i < len(trs) && trs[i].Lo <= b {
		return trs[i].Next, true
	}
	return InvalidState, false
}

// addThread inserts the epsilon-closure of sid into set, recording start
// offsets in the generation's starts array and evaluating zero-width
// assertions against the given offset.
//
// The closure walk is a loop over an explicit stack with the active set
// doubling as the visited set, so the cycles introduced by Star always
// terminate. First insertion wins for the start offset: callers process
// threads in non-decreasing start order, which keeps starts minimal and
// the leftmost match intact.
func (p *PikeVM) addThread(st *SimState, set *sparse.Set, starts []int, sid StateID, start int, haystack []byte, pos int) {
	st.stack = append(st.stack[:0], sid)

	for len(st.stack) > 0 {
		n := len(st.stack) - 1
		id := st.stack[n]
		st.stack = st.stack[:n]

		if !set.Insert(uint32(id)) {
			continue
		}
		starts[id] = start

		s := p.nfa.State(id)
		switch s.Kind() {
		case StateEpsilon:
			st.stack = append(st.stack, s.Epsilon())

		case StateSplit:
			left, right := s.Split()
			st.stack = append(st.stack, right, left)

		case StateLook:
			look, next := s.Look()
			if lookMatches(look, haystack, pos) {
				st.stack = append(st.stack, next)
			}

		case StateMatch, StateByteRange, StateSparse, StateFail:
			// Terminal for closure purposes
		}
	}
}

// lookMatches checks if a zero-width assertion holds at the given offset
func lookMatches(look Look, haystack []byte, pos int) bool {
	switch look {
	case LookStartText:
		return pos == 0
	case LookEndText:
		return pos == len(haystack)
	}
	return false
}
