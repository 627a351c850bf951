package literal

import (
	"github.com/coregx/rematch/syntax"
)

// ExtractorConfig bounds extraction work
type ExtractorConfig struct {
	// MaxLiterals limits how many alternation branches are extracted.
	// Default: 256
	MaxLiterals int

	// MaxLiteralLen limits the length of a single extracted literal.
	// Default: 64
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   256,
		MaxLiteralLen: 64,
	}
}

// Extractor recognizes patterns that are pure literals or alternations
// of pure literals.
type Extractor struct {
	config ExtractorConfig
}

// New creates an extractor with the given configuration
func New(config ExtractorConfig) *Extractor {
	if config.MaxLiterals == 0 {
		config.MaxLiterals = 256
	}
	if config.MaxLiteralLen == 0 {
		config.MaxLiteralLen = 64
	}
	return &Extractor{config: config}
}

// ExtractAlternation returns the complete literal set when the whole
// tree is a literal or an alternation of literals, and nil otherwise.
// Anchors, classes, dots, and quantifiers all disqualify the tree: a
// partial literal is of no use to a whole-pattern literal engine.
func (e *Extractor) ExtractAlternation(re *syntax.Regexp) *Seq {
	seq := NewSeq()

	if re.Op == syntax.OpAlternate {
		if len(re.Sub) > e.config.MaxLiterals {
			return nil
		}
		for _, sub := range re.Sub {
			b, ok := e.literalBytes(sub)
			if !ok {
				return nil
			}
			seq.push(b)
		}
		return seq
	}

	b, ok := e.literalBytes(re)
	if !ok {
		return nil
	}
	seq.push(b)
	return seq
}

// literalBytes flattens a node into literal bytes if it is exactly a
// literal byte or a concatenation of literal bytes.
func (e *Extractor) literalBytes(re *syntax.Regexp) ([]byte, bool) {
	switch re.Op {
	case syntax.OpLiteral:
		return []byte{re.Byte}, true
	case syntax.OpConcat:
		if len(re.Sub) > e.config.MaxLiteralLen {
			return nil, false
		}
		b := make([]byte, 0, len(re.Sub))
		for _, sub := range re.Sub {
			if sub.Op != syntax.OpLiteral {
				return nil, false
			}
			b = append(b, sub.Byte)
		}
		return b, true
	default:
		return nil, false
	}
}
