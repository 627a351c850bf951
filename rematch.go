// Package rematch is a from-scratch regular expression engine built on
// NFA simulation instead of backtracking.
//
// A pattern is compiled once into an immutable automaton:
//
//	parser -> syntax tree -> Thompson NFA -> PikeVM simulation
//
// Matching advances a whole set of automaton states per input byte, so
// worst-case time is O(len(pattern) * len(input)) for every pattern —
// there is no input that triggers exponential behavior.
//
// Basic usage:
//
//	p, err := rematch.Compile(`[a-z]+@[a-z]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.Matches("user@host")                  // true: whole input must match
//	p.FindStringIndex("mail user@host now") // [5 14]
//
// Matches uses full-string semantics: the automaton must consume the
// entire input. The Find variants search for the leftmost-longest
// matching span instead.
//
// Supported syntax: literal characters, '.', character classes [abc]
// [a-z] [^a-z], greedy quantifiers '*' '+' '?', alternation '|',
// grouping (...), anchors '^' and '$', and backslash escapes. There are
// no backreferences, lookaround assertions, Unicode property classes,
// or lazy quantifiers. Capture groups are a documented extension point.
//
// A compiled Pattern is safe for concurrent use by multiple goroutines.
package rematch

import (
	"github.com/coregx/rematch/meta"
)

// Pattern is a compiled regular expression.
//
// A Pattern is immutable and safe to share: per-search scratch state is
// pooled internally, never stored on the Pattern.
type Pattern struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a pattern string.
//
// Malformed patterns — unbalanced grouping, a quantifier with no
// preceding atom, an unterminated character class, an empty alternation
// branch — are rejected here with a *syntax.Error (wrapped); matching a
// compiled Pattern can never fail.
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern string and panics if it fails.
// Useful for patterns known to be valid at compile time:
//
//	var wordPattern = rematch.MustCompile(`[a-zA-Z]+`)
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("rematch: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles a pattern with custom configuration.
// Configuration is explicit and per-pattern; there is no global state.
func CompileWithConfig(pattern string, config meta.Config) (*Pattern, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default compilation configuration
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.pattern
}

// Matches reports whether the pattern matches the entire input.
// The empty pattern matches only the empty input.
func (p *Pattern) Matches(input string) bool {
	return p.engine.Matches([]byte(input))
}

// MatchesBytes is Matches for a byte slice input
func (p *Pattern) MatchesBytes(input []byte) bool {
	return p.engine.Matches(input)
}

// FindStringIndex returns [start, end) of the leftmost-longest match
// within input, or nil if there is no match.
func (p *Pattern) FindStringIndex(input string) []int {
	m, ok := p.engine.Find([]byte(input))
	if !ok {
		return nil
	}
	return []int{m.Start, m.End}
}

// FindString returns the text of the leftmost-longest match within
// input. It returns the empty string both for no match and for an empty
// match; use FindStringIndex to tell them apart.
func (p *Pattern) FindString(input string) string {
	m, ok := p.engine.Find([]byte(input))
	if !ok {
		return ""
	}
	return input[m.Start:m.End]
}

// FindAllStringIndex returns the [start, end) spans of up to n
// non-overlapping matches, leftmost first. n = -1 means all matches.
func (p *Pattern) FindAllStringIndex(input string, n int) [][]int {
	matches := p.engine.FindAll([]byte(input), n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Start, m.End}
	}
	return out
}
