package core

import (
	"github.com/canarysec/canary/internal/engine"
	"github.com/canarysec/canary/internal/patterns"
	"github.com/canarysec/canary/internal/types"
)

// Re-export selected internal types as a stable public API surface. These are
// type aliases so embedding programs can depend on a stable import path.
type (
	Config     = engine.Config
	Result     = engine.Result
	Finding    = types.Finding
	Stats      = types.Stats
	Confidence = types.Confidence
	Registry   = patterns.Registry
	LoadError  = patterns.LoadError
	Validation = patterns.Validation
)

// ErrNoPatterns mirrors the engine's fatal empty-registry condition.
var ErrNoPatterns = engine.ErrNoPatterns

// Scan runs a scan with an already-loaded registry in cfg.Registry.
func Scan(cfg Config) (Result, error) {
	return engine.Scan(cfg)
}

// ScanSource is the full engine contract: load patternSource, scan root, and
// return findings with statistics plus the non-fatal pattern load errors.
// A nil patternSource selects the built-in ruleset.
func ScanSource(root string, patternSource []byte, cfg Config) (Result, []LoadError, error) {
	var (
		reg      *Registry
		loadErrs []LoadError
		err      error
	)
	if patternSource == nil {
		reg, err = patterns.Default()
	} else {
		reg, loadErrs, err = patterns.Load(patternSource)
	}
	if err != nil {
		return Result{}, loadErrs, err
	}
	cfg.Root = root
	cfg.Registry = reg
	res, err := engine.Scan(cfg)
	return res, loadErrs, err
}

// ValidatePatterns pre-flights a pattern source without retaining state.
func ValidatePatterns(src []byte) Validation {
	return patterns.Validate(src)
}

// DefaultPatterns loads the embedded ruleset.
func DefaultPatterns() (*Registry, error) {
	return patterns.Default()
}

// BuiltinPatternSource returns the embedded ruleset in YAML source form.
func BuiltinPatternSource() []byte {
	return patterns.BuiltinSource()
}
