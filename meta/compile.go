package meta

import (
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/nfa"
	"github.com/coregx/rematch/syntax"
)

// CompileError wraps compilation errors with the offending pattern.
// The underlying cause (a *syntax.Error for malformed patterns) is
// reachable through Unwrap.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile compiles a pattern into an executable Engine.
//
// Steps:
//  1. Parse the pattern into a syntax tree
//  2. Compile the tree to a Thompson NFA
//  3. Extract literals from the tree
//  4. Select a strategy and build its engine
//
// All syntax errors surface here; matching never fails.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	re, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		MaxRecursionDepth: config.MaxRecursionDepth,
	})
	automaton, err := compiler.CompileRegexp(re)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	engine := &Engine{
		nfa:      automaton,
		pikevm:   nfa.NewPikeVM(automaton),
		strategy: UseNFA,
		config:   config,
	}
	engine.statePool.New = func() any {
		st := nfa.NewSimState()
		engine.pikevm.InitState(st)
		return st
	}

	if config.EnableLiteralEngines {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals: config.MaxLiterals,
		})
		literals := extractor.ExtractAlternation(re)
		engine.strategy = selectStrategy(literals, config)
		engine.literals = literals

		switch engine.strategy {
		case UseSingleLiteral:
			engine.lit = literals.Get(0).Bytes

		case UseAhoCorasick:
			builder := ahocorasick.NewBuilder()
			for i := 0; i < literals.Len(); i++ {
				builder.AddPattern(literals.Get(i).Bytes)
			}
			auto, err := builder.Build()
			if err != nil {
				// The PikeVM handles the pattern regardless
				engine.strategy = UseNFA
			} else {
				engine.ahoCorasick = auto
			}
		}
	}

	return engine, nil
}
