// Package meta implements the meta-engine orchestrator that selects a
// regex execution strategy per pattern.
//
// The meta-engine coordinates:
//   - literal engines: byte comparison / Aho-Corasick for patterns that
//     are literals or alternations of literals
//   - NFA (PikeVM): the general multi-state simulation fallback
//
// Strategy selection happens once at compile time from the parsed tree;
// the compiled engine is immutable and safe for concurrent searches.
package meta

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates invalid configuration was provided
var ErrInvalidConfig = errors.New("invalid meta-engine configuration")

// Config controls meta-engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnableLiteralEngines = false // force PikeVM execution
//	engine, err := meta.CompileWithConfig("foo|bar", config)
type Config struct {
	// EnableLiteralEngines enables the literal fast paths.
	// When false, every pattern runs on the PikeVM.
	// Default: true
	EnableLiteralEngines bool

	// MinAhoCorasickLiterals is the alternation size at which the
	// Aho-Corasick engine takes over from pairwise byte comparison.
	// Default: 8
	MinAhoCorasickLiterals int

	// MaxLiterals limits the number of literals extracted from an
	// alternation. Larger alternations fall back to the PikeVM.
	// Default: 256
	MaxLiterals int

	// MaxRecursionDepth limits recursion during NFA compilation.
	// Default: 100
	MaxRecursionDepth int
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		EnableLiteralEngines:   true,
		MinAhoCorasickLiterals: 8,
		MaxLiterals:            256,
		MaxRecursionDepth:      100,
	}
}

// Validate checks configuration invariants
func (c Config) Validate() error {
	if c.MinAhoCorasickLiterals < 2 {
		return fmt.Errorf("%w: MinAhoCorasickLiterals must be >= 2, got %d",
			ErrInvalidConfig, c.MinAhoCorasickLiterals)
	}
	if c.MaxLiterals < 1 {
		return fmt.Errorf("%w: MaxLiterals must be >= 1, got %d",
			ErrInvalidConfig, c.MaxLiterals)
	}
	if c.MaxRecursionDepth < 1 {
		return fmt.Errorf("%w: MaxRecursionDepth must be >= 1, got %d",
			ErrInvalidConfig, c.MaxRecursionDepth)
	}
	return nil
}
