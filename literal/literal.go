// Package literal extracts literal strings from parsed patterns.
//
// The meta engine uses extraction results to route whole patterns to
// literal engines: a pattern that is nothing but a literal, or an
// alternation of literals, never needs automaton simulation at all.
package literal

// Literal is a single extracted literal string
type Literal struct {
	Bytes []byte
}

// Seq is an ordered sequence of extracted literals
type Seq struct {
	lits []Literal
}

// NewSeq creates a sequence from the given literals
func NewSeq(lits ...Literal) *Seq {
	return &Seq{lits: lits}
}

// Len returns the number of literals in the sequence
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lits)
}

// Get returns the i-th literal
func (s *Seq) Get(i int) Literal {
	return s.lits[i]
}

// IsEmpty returns true if the sequence holds no literals
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// MinLen returns the length of the shortest literal, or 0 for an empty sequence
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	min := len(s.lits[0].Bytes)
	for _, l := range s.lits[1:] {
		if len(l.Bytes) < min {
			min = len(l.Bytes)
		}
	}
	return min
}

func (s *Seq) push(b []byte) {
	s.lits = append(s.lits, Literal{Bytes: b})
}
