// Package syntax parses regular expression patterns into an abstract
// syntax tree.
//
// The supported syntax is a small, predictable core:
//
//   - literal bytes, with backslash escapes for metacharacters
//   - .              any byte
//   - [abc] [a-z]    character classes, [^...] negates
//   - * + ?          postfix quantifiers (greedy)
//   - |              alternation
//   - (...)          grouping (non-capturing)
//   - ^ $            start/end of input anchors
//
// There are no backreferences, lookaround assertions, Unicode property
// classes, or multiline anchors. Capture groups are an extension point,
// not implemented here.
//
// The parser is the sole gatekeeper: any tree it produces can be compiled
// and matched without further validation.
package syntax

import (
	"fmt"
	"strings"
)

// Op identifies the kind of a Regexp node.
//
// The operation set is closed. Consumers are expected to switch
// exhaustively over it.
type Op uint8

const (
	// OpEmpty matches the empty string.
	OpEmpty Op = iota

	// OpLiteral matches a single byte (the Byte field).
	OpLiteral

	// OpAnyChar matches any single byte ('.').
	OpAnyChar

	// OpClass matches one byte against Ranges, inverted when Negated is set.
	OpClass

	// OpConcat matches the concatenation of Sub.
	OpConcat

	// OpAlternate matches any one of Sub.
	OpAlternate

	// OpStar matches Sub[0] zero or more times.
	OpStar

	// OpPlus matches Sub[0] one or more times.
	OpPlus

	// OpQuest matches Sub[0] zero or one time.
	OpQuest

	// OpBeginText matches a zero-width position at the start of input ('^').
	OpBeginText

	// OpEndText matches a zero-width position at the end of input ('$').
	OpEndText
)

// String returns a human-readable representation of the Op
func (op Op) String() string {
	switch op {
	case OpEmpty:
		return "Empty"
	case OpLiteral:
		return "Literal"
	case OpAnyChar:
		return "AnyChar"
	case OpClass:
		return "Class"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	case OpQuest:
		return "Quest"
	case OpBeginText:
		return "BeginText"
	case OpEndText:
		return "EndText"
	default:
		return fmt.Sprintf("Unknown(%d)", op)
	}
}

// Range is an inclusive byte range [Lo, Hi] inside a character class.
type Range struct {
	Lo byte
	Hi byte
}

// Contains returns true if b falls within the range
func (r Range) Contains(b byte) bool {
	return b >= r.Lo && b <= r.Hi
}

// Regexp is a node in the parsed syntax tree.
//
// Which fields are meaningful depends on Op: Byte for OpLiteral, Ranges
// and Negated for OpClass, Sub for the composite operations. Trees are
// immutable once returned by Parse.
type Regexp struct {
	Op      Op
	Byte    byte      // OpLiteral
	Ranges  []Range   // OpClass, as written (not complemented)
	Negated bool      // OpClass
	Sub     []*Regexp // OpConcat, OpAlternate, OpStar, OpPlus, OpQuest
}

// String returns a compact s-expression dump of the tree, for tests and
// debugging.
func (re *Regexp) String() string {
	var b strings.Builder
	re.dump(&b)
	return b.String()
}

func (re *Regexp) dump(b *strings.Builder) {
	switch re.Op {
	case OpLiteral:
		fmt.Fprintf(b, "lit(%q)", string(re.Byte))
	case OpClass:
		b.WriteString("class(")
		if re.Negated {
			b.WriteByte('^')
		}
		for _, r := range re.Ranges {
			if r.Lo == r.Hi {
				fmt.Fprintf(b, "%q", string(r.Lo))
			} else {
				fmt.Fprintf(b, "%q-%q", string(r.Lo), string(r.Hi))
			}
		}
		b.WriteByte(')')
	case OpEmpty, OpAnyChar, OpBeginText, OpEndText:
		b.WriteString(strings.ToLower(re.Op.String()))
	default:
		b.WriteString(strings.ToLower(re.Op.String()))
		b.WriteByte('(')
		for i, sub := range re.Sub {
			if i > 0 {
				b.WriteByte(' ')
			}
			sub.dump(b)
		}
		b.WriteByte(')')
	}
}
