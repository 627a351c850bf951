package meta

import (
	"bytes"
	"fmt"

	"github.com/coregx/rematch/literal"
)

// Strategy represents the execution strategy for a compiled pattern.
//
// Selection is automatic from the parsed tree:
//   - a pattern that is one literal runs on byte comparison
//   - an alternation of many literals runs on Aho-Corasick
//   - everything else runs on the PikeVM
type Strategy int

const (
	// UseNFA uses only the PikeVM engine. The default for any pattern
	// with regex structure (classes, quantifiers, anchors, dots).
	UseNFA Strategy = iota

	// UseSingleLiteral uses plain byte comparison and substring search.
	// Selected when the whole pattern is a single literal string.
	UseSingleLiteral

	// UseAhoCorasick uses a multi-pattern literal automaton.
	// Selected when the pattern is an alternation of at least
	// MinAhoCorasickLiterals literal strings.
	UseAhoCorasick
)

// String returns a human-readable representation of the Strategy
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "NFA"
	case UseSingleLiteral:
		return "SingleLiteral"
	case UseAhoCorasick:
		return "AhoCorasick"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// selectStrategy picks a strategy from the extracted literal set.
// literals is nil when the pattern is not a pure literal alternation.
func selectStrategy(literals *literal.Seq, config Config) Strategy {
	if !config.EnableLiteralEngines || literals.IsEmpty() {
		return UseNFA
	}
	if literals.Len() == 1 {
		return UseSingleLiteral
	}
	if literals.Len() >= config.MinAhoCorasickLiterals && !hasPrefixPair(literals) {
		return UseAhoCorasick
	}
	// Small alternations: the PikeVM set stays tiny, a dedicated
	// multi-pattern automaton isn't worth building.
	return UseNFA
}

// hasPrefixPair reports whether any literal is a prefix of another.
// The multi-pattern automaton reports the first match it completes,
// which for such sets is leftmost-shortest; Find promises
// leftmost-longest, so those sets stay on the PikeVM.
func hasPrefixPair(literals *literal.Seq) bool {
	for i := 0; i < literals.Len(); i++ {
		for j := 0; j < literals.Len(); j++ {
			if i == j {
				continue
			}
			if bytes.HasPrefix(literals.Get(j).Bytes, literals.Get(i).Bytes) {
				return true
			}
		}
	}
	return false
}
