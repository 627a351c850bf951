package nfa

import (
	"sort"

	"github.com/coregx/rematch/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRecursionDepth limits recursion during compilation to prevent
	// stack overflow on deeply nested patterns.
	// Default: 100
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 100,
	}
}

// Compiler compiles syntax trees into Thompson NFAs.
//
// Each syntax node becomes one fragment with a single entry state and a
// single dangling exit that the caller patches onward. Construction is
// total over any tree the parser accepts: state count grows linearly
// with pattern length, so the only blow-up this design has to guard
// against is in simulation, not here.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	return &Compiler{
		config: config,
	}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses and compiles a pattern string into an NFA
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	re, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}
	return c.CompileRegexp(re)
}

// CompileRegexp compiles a parsed syntax tree into an NFA
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	c.builder = NewBuilder()
	c.depth = 0

	start, end, err := c.compile(re)
	if err != nil {
		return nil, err
	}

	// Mark the outermost fragment's exit as the single accepting state
	accept := c.builder.AddMatch()
	if err := c.builder.Patch(end, accept); err != nil {
		return nil, &CompileError{Err: err}
	}
	c.builder.SetStart(start)

	nfa, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return nfa, nil
}

// compile recursively compiles a syntax node.
// Returns (start, end) state IDs for the fragment; end always has a
// single patchable dangling target.
func (c *Compiler) compile(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, &CompileError{Err: ErrTooComplex}
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpEmpty:
		return c.compileEmpty()
	case syntax.OpLiteral:
		id := c.builder.AddByteRange(re.Byte, re.Byte, InvalidState)
		return id, id, nil
	case syntax.OpAnyChar:
		id := c.builder.AddByteRange(0x00, 0xFF, InvalidState)
		return id, id, nil
	case syntax.OpClass:
		return c.compileClass(re.Ranges, re.Negated)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0])
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0])
	case syntax.OpBeginText:
		id := c.builder.AddLook(LookStartText, InvalidState)
		return id, id, nil
	case syntax.OpEndText:
		id := c.builder.AddLook(LookEndText, InvalidState)
		return id, id, nil
	default:
		// The Op set is closed; the parser cannot produce anything else.
		return InvalidState, InvalidState, &CompileError{Err: ErrTooComplex}
	}
}

// compileEmpty compiles an epsilon fragment (matches without consuming input)
func (c *Compiler) compileEmpty() (start, end StateID, err error) {
	id := c.builder.AddEpsilon(InvalidState)
	return id, id, nil
}

// compileClass compiles a character class.
//
// Ranges are normalized (sorted, merged) and complemented against the
// byte alphabet when negated. The class is a distinct predicate on the
// transition, never a sentinel symbol key, so a class over byte 0 cannot
// collide with anything.
func (c *Compiler) compileClass(ranges []syntax.Range, negated bool) (start, end StateID, err error) {
	norm := normalizeRanges(ranges)
	if negated {
		norm = complementRanges(norm)
	}

	if len(norm) == 0 {
		// Nothing can match, e.g. [^\x00-\xff]. The Fail entry has no
		// way out, so the dangling exit and everything wired after it
		// are unreachable from the automaton start. Validate only
		// requires targets to be in bounds, not reachable.
		fail := c.builder.AddFail()
		exit := c.builder.AddEpsilon(InvalidState)
		return fail, exit, nil
	}

	if len(norm) == 1 {
		id := c.builder.AddByteRange(norm[0].Lo, norm[0].Hi, InvalidState)
		return id, id, nil
	}

	// Multiple ranges fan into one shared epsilon exit
	exit := c.builder.AddEpsilon(InvalidState)
	transitions := make([]Transition, len(norm))
	for i, r := range norm {
		transitions[i] = Transition{Lo: r.Lo, Hi: r.Hi, Next: exit}
	}
	id := c.builder.AddSparse(transitions)
	return id, exit, nil
}

// compileConcat chains fragments, wiring each exit to the next entry
func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	start, end, err = c.compile(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}

	for _, sub := range subs[1:] {
		nextStart, nextEnd, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(end, nextStart); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		end = nextEnd
	}

	return start, end, nil
}

// compileAlternate distributes over all branches via a chain of splits
// and converges every branch exit on one shared epsilon join.
func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	join := c.builder.AddEpsilon(InvalidState)

	starts := make([]StateID, 0, len(subs))
	for _, sub := range subs {
		s, e, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(e, join); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		starts = append(starts, s)
	}

	return c.splitChain(starts), join, nil
}

// splitChain builds Split(s1, Split(s2, ...)) for n branch entries
func (c *Compiler) splitChain(targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	right := c.splitChain(targets[1:])
	return c.builder.AddSplit(targets[0], right)
}

// compileStar compiles x* (zero or more).
// The split offers the zero-iteration path directly to the exit; the
// loop-back patch is the only place cycles enter the automaton.
func (c *Compiler) compileStar(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}

	return split, end, nil
}

// compilePlus compiles x+ (one or more) by looping through the single
// built fragment rather than duplicating it, so x+ costs the same number
// of states as x*.
func (c *Compiler) compilePlus(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}

	return subStart, end, nil
}

// compileQuest compiles x? (zero or one)
func (c *Compiler) compileQuest(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, end); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}

	return split, end, nil
}

// normalizeRanges sorts ranges by lower bound and merges overlapping or
// adjacent ones, so sparse transitions can be binary-searched.
func normalizeRanges(ranges []syntax.Range) []syntax.Range {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]syntax.Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Lo != sorted[j].Lo {
			return sorted[i].Lo < sorted[j].Lo
		}
		return sorted[i].Hi < sorted[j].Hi
	})

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if int(r.Lo) <= int(last.Hi)+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// complementRanges returns the complement of normalized ranges within
// the byte alphabet [0x00, 0xFF].
func complementRanges(ranges []syntax.Range) []syntax.Range {
	var out []syntax.Range
	next := 0
	for _, r := range ranges {
		if int(r.Lo) > next {
			out = append(out, syntax.Range{Lo: byte(next), Hi: r.Lo - 1})
		}
		next = int(r.Hi) + 1
	}
	if next <= 0xFF {
		out = append(out, syntax.Range{Lo: byte(next), Hi: 0xFF})
	}
	return out
}
