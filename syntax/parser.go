package syntax

// Parse parses a pattern into a syntax tree.
//
// Precedence, loosest to tightest: alternation '|', concatenation
// (juxtaposition), postfix quantifiers '*' '+' '?'. Quantifiers apply to
// the immediately preceding atom or group; a quantifier directly after
// another quantifier is rejected rather than parsed as a nested
// repetition.
//
// The empty pattern parses to a tree matching only the empty string.
func Parse(pattern string) (*Regexp, error) {
	p := &parser{pattern: pattern}
	re, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// parseConcat only stops early on ')'
		return nil, &Error{Pos: p.pos, Err: ErrUnmatchedParen}
	}
	return re, nil
}

type parser struct {
	pattern string
	pos     int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.pattern)
}

func (p *parser) peek() byte {
	return p.pattern[p.pos]
}

// parseAlternate parses a sequence of '|'-separated branches.
// A branch with no atoms is an error: "a|" and "|a" are rejected,
// the optional-match reading is spelled (a)? instead.
func (p *parser) parseAlternate() (*Regexp, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.eof() || p.peek() != '|' {
		return first, nil
	}

	subs := []*Regexp{first}
	for !p.eof() && p.peek() == '|' {
		barPos := p.pos
		p.pos++
		branch, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		if branch.Op == OpEmpty {
			return nil, &Error{Pos: barPos, Err: ErrEmptyAlternate}
		}
		subs = append(subs, branch)
	}
	if first.Op == OpEmpty {
		return nil, &Error{Pos: 0, Err: ErrEmptyAlternate}
	}
	return &Regexp{Op: OpAlternate, Sub: subs}, nil
}

// parseConcat parses a run of quantified atoms, stopping at '|', ')' or
// the end of the pattern.
func (p *parser) parseConcat() (*Regexp, error) {
	var subs []*Regexp
	for !p.eof() {
		c := p.peek()
		if c == '|' || c == ')' {
			break
		}
		if c == '*' || c == '+' || c == '?' {
			return nil, &Error{Pos: p.pos, Err: ErrDanglingQuantifier}
		}

		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		atom, err = p.parseQuantifier(atom)
		if err != nil {
			return nil, err
		}
		subs = append(subs, atom)
	}

	switch len(subs) {
	case 0:
		return &Regexp{Op: OpEmpty}, nil
	case 1:
		return subs[0], nil
	default:
		return &Regexp{Op: OpConcat, Sub: subs}, nil
	}
}

// parseQuantifier wraps atom in at most one postfix quantifier.
// A second quantifier in a row ("a**") has no atom of its own and is
// reported at its position; the concat loop catches it.
func (p *parser) parseQuantifier(atom *Regexp) (*Regexp, error) {
	if p.eof() {
		return atom, nil
	}
	var op Op
	switch p.peek() {
	case '*':
		op = OpStar
	case '+':
		op = OpPlus
	case '?':
		op = OpQuest
	default:
		return atom, nil
	}
	p.pos++
	return &Regexp{Op: op, Sub: []*Regexp{atom}}, nil
}

func (p *parser) parseAtom() (*Regexp, error) {
	switch c := p.peek(); c {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return &Regexp{Op: OpAnyChar}, nil
	case '^':
		p.pos++
		return &Regexp{Op: OpBeginText}, nil
	case '$':
		p.pos++
		return &Regexp{Op: OpEndText}, nil
	case '\\':
		b, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		return &Regexp{Op: OpLiteral, Byte: b}, nil
	default:
		p.pos++
		return &Regexp{Op: OpLiteral, Byte: c}, nil
	}
}

// parseGroup parses '(' alternate ')'. Groups are non-capturing.
func (p *parser) parseGroup() (*Regexp, error) {
	open := p.pos
	p.pos++ // '('
	inner, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if p.eof() || p.peek() != ')' {
		return nil, &Error{Pos: open, Err: ErrUnterminatedGroup}
	}
	p.pos++ // ')'
	return inner, nil
}

// parseClass parses '[' ... ']' into an ordered list of inclusive ranges
// plus a negation flag. Ranges are kept as written; normalization and
// complementation happen at compile time, against the matcher's alphabet.
//
// A '-' at the start or end of the class is a literal. Escapes work
// inside classes the same way they do outside.
func (p *parser) parseClass() (*Regexp, error) {
	open := p.pos
	p.pos++ // '['

	negated := false
	if !p.eof() && p.peek() == '^' {
		negated = true
		p.pos++
	}

	var ranges []Range
	for {
		if p.eof() {
			return nil, &Error{Pos: open, Err: ErrUnterminatedClass}
		}
		if p.peek() == ']' {
			p.pos++
			break
		}

		lo, err := p.parseClassChar()
		if err != nil {
			return nil, err
		}

		// 'x-y' is a range unless the '-' is the last member
		if !p.eof() && p.peek() == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			dash := p.pos
			p.pos++
			hi, err := p.parseClassChar()
			if err != nil {
				return nil, err
			}
			if lo > hi {
				return nil, &Error{Pos: dash, Err: ErrInvalidClassRange}
			}
			ranges = append(ranges, Range{Lo: lo, Hi: hi})
			continue
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo})
	}

	if len(ranges) == 0 {
		return nil, &Error{Pos: open, Err: ErrEmptyClass}
	}
	return &Regexp{Op: OpClass, Ranges: ranges, Negated: negated}, nil
}

// parseClassChar reads one class member byte, resolving escapes.
func (p *parser) parseClassChar() (byte, error) {
	if p.peek() == '\\' {
		return p.parseEscape()
	}
	c := p.peek()
	p.pos++
	return c, nil
}

// parseEscape reads a backslash escape. Control escapes map to their
// byte values, '\xNN' to an arbitrary byte; anything else is the
// escaped byte taken literally, which covers metacharacters like '\*'
// and '\]'.
func (p *parser) parseEscape() (byte, error) {
	slash := p.pos
	p.pos++ // '\'
	if p.eof() {
		return 0, &Error{Pos: slash, Err: ErrTrailingBackslash}
	}
	c := p.peek()
	p.pos++
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	case '0':
		return 0, nil
	case 'x':
		hi, ok1 := p.hexDigit()
		lo, ok2 := p.hexDigit()
		if !ok1 || !ok2 {
			return 0, &Error{Pos: slash, Err: ErrInvalidEscape}
		}
		return hi<<4 | lo, nil
	}
	return c, nil
}

// hexDigit consumes one hex digit and returns its value
func (p *parser) hexDigit() (byte, bool) {
	if p.eof() {
		return 0, false
	}
	c := p.peek()
	switch {
	case c >= '0' && c <= '9':
		p.pos++
		return c - '0', true
	case c >= 'a' && c <= 'f':
		p.pos++
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		p.pos++
		return c - 'A' + 10, true
	}
	return 0, false
}
