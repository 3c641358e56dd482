package patterns

import (
	_ "embed"
	"fmt"
)

//go:embed patterns.yml
var builtin []byte

// BuiltinSource returns the embedded default ruleset in source form, so
// callers can validate or extend it the same way as an on-disk file.
func BuiltinSource() []byte {
	out := make([]byte, len(builtin))
	copy(out, builtin)
	return out
}

// Default loads the embedded ruleset. Every built-in entry must compile;
// a failure here is a packaging bug, not a runtime condition.
func Default() (*Registry, error) {
	reg, errs, err := Load(builtin)
	if err != nil {
		return nil, fmt.Errorf("builtin patterns: %w", err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("builtin patterns: %d invalid entries, first: %v", len(errs), errs[0])
	}
	return reg, nil
}
