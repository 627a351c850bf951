package meta

import (
	"bytes"
	"sync"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/nfa"
)

// Engine is the meta-engine for one compiled pattern.
//
// Thread safety: the Engine is immutable after compilation. Per-search
// mutable simulation state is managed via a sync.Pool, so all search
// methods are safe to call from multiple goroutines concurrently.
//
// Example:
//
//	engine, err := meta.Compile("[a-z]+@[a-z]+")
//	if err != nil {
//	    return err
//	}
//	ok := engine.Matches([]byte("user@host")) // full-string match
//	m, found := engine.Find([]byte("mail user@host now"))
type Engine struct {
	nfa    *nfa.NFA
	pikevm *nfa.PikeVM

	// Literal fast paths; nil/empty unless the strategy selects them
	lit         []byte
	literals    *literal.Seq
	ahoCorasick *ahocorasick.Automaton

	strategy Strategy
	config   Config

	// statePool provides per-search SimState instances so concurrent
	// searches never share scratch space
	statePool sync.Pool
}

// Strategy returns the execution strategy selected at compile time
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// NumStates returns the number of states in the compiled automaton
func (e *Engine) NumStates() int {
	return e.nfa.States()
}

func (e *Engine) getState() *nfa.SimState {
	return e.statePool.Get().(*nfa.SimState)
}

func (e *Engine) putState(st *nfa.SimState) {
	e.statePool.Put(st)
}

// Matches reports whether the pattern matches the entire haystack.
// Matching one symbol short of the end is not success: the automaton
// must consume every byte.
func (e *Engine) Matches(haystack []byte) bool {
	switch e.strategy {
	case UseSingleLiteral:
		return bytes.Equal(haystack, e.lit)

	case UseAhoCorasick:
		// Full-string semantics: the haystack must equal one of the
		// alternation's literals. The automaton serves Find, not this.
		for i := 0; i < e.literals.Len(); i++ {
			if bytes.Equal(haystack, e.literals.Get(i).Bytes) {
				return true
			}
		}
		return false

	default:
		st := e.getState()
		defer e.putState(st)
		return e.pikevm.MatchesWithState(st, haystack)
	}
}

// Find returns the leftmost-longest match in the haystack
func (e *Engine) Find(haystack []byte) (nfa.Match, bool) {
	return e.FindAt(haystack, 0)
}

// FindAt returns the leftmost-longest match beginning at or after offset at
func (e *Engine) FindAt(haystack []byte, at int) (nfa.Match, bool) {
	if at < 0 || at > len(haystack) {
		return nfa.Match{}, false
	}

	switch e.strategy {
	case UseSingleLiteral:
		i := bytes.Index(haystack[at:], e.lit)
		if i < 0 {
			return nfa.Match{}, false
		}
		return nfa.Match{Start: at + i, End: at + i + len(e.lit)}, true

	case UseAhoCorasick:
		m := e.ahoCorasick.Find(haystack, at)
		if m == nil {
			return nfa.Match{}, false
		}
		return nfa.Match{Start: m.Start, End: m.End}, true

	default:
		st := e.getState()
		defer e.putState(st)
		return e.pikevm.SearchAtWithState(st, haystack, at)
	}
}

// FindAll returns up to limit non-overlapping leftmost matches in order.
// A limit of -1 returns all matches. An empty match advances the scan by
// one byte so the search always makes progress.
func (e *Engine) FindAll(haystack []byte, limit int) []nfa.Match {
	var matches []nfa.Match
	at := 0
	for limit < 0 || len(matches) < limit {
		m, ok := e.FindAt(haystack, at)
		if !ok {
			break
		}
		matches = append(matches, m)
		if m.End > at {
			at = m.End
		} else {
			at++
		}
		if at > len(haystack) {
			break
		}
	}
	return matches
}
