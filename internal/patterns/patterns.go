package patterns

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/canarysec/canary/internal/types"
)

// Pattern is one compiled detection rule. Instances are immutable after load
// and safe for concurrent use.
type Pattern struct {
	RuleID      string
	Description string
	Confidence  types.Confidence
	re          *regexp.Regexp
}

// Expression returns the source text of the compiled expression.
func (p *Pattern) Expression() string { return p.re.String() }

// FindAll returns every match of the pattern in line, in position order.
func (p *Pattern) FindAll(line string) []string {
	return p.re.FindAllString(line, -1)
}

// LoadError records one rejected pattern entry. Load errors are non-fatal:
// the registry keeps the entries that did compile.
type LoadError struct {
	Index  int
	RuleID string
	Reason string
}

func (e LoadError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("pattern %q (entry %d): %s", e.RuleID, e.Index, e.Reason)
	}
	return fmt.Sprintf("pattern entry %d: %s", e.Index, e.Reason)
}

// Registry holds compiled patterns partitioned by confidence tier. It is
// read-only after Load; concurrent scans may share one instance.
type Registry struct {
	byTier map[types.Confidence][]*Pattern
	count  int
}

// Len returns the number of compiled patterns.
func (r *Registry) Len() int { return r.count }

// ByTier returns the patterns of one tier in source order.
func (r *Registry) ByTier(c types.Confidence) []*Pattern {
	return r.byTier[c]
}

// entry is the on-disk YAML shape of one pattern.
type entry struct {
	RuleID      string `yaml:"rule_id"`
	Description string `yaml:"description"`
	Regex       string `yaml:"regex"`
	Confidence  string `yaml:"confidence"`
}

type document struct {
	Patterns []entry `yaml:"patterns"`
}

// parse accepts either a bare YAML list of entries or a document with a
// top-level "patterns" key.
func parse(src []byte) ([]entry, error) {
	var bare []entry
	if err := yaml.Unmarshal(src, &bare); err == nil && bare != nil {
		return bare, nil
	}
	var doc document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parse pattern source: %w", err)
	}
	return doc.Patterns, nil
}

// Load parses src, compiles each entry, and returns the registry of patterns
// that compiled plus a per-entry error list for those that did not. The only
// fatal condition is a source that cannot be parsed at all; a registry with
// zero patterns is a usable result and callers decide whether to accept it.
func Load(src []byte) (*Registry, []LoadError, error) {
	entries, err := parse(src)
	if err != nil {
		return nil, nil, err
	}

	reg := &Registry{byTier: map[types.Confidence][]*Pattern{}}
	var errs []LoadError
	seen := map[string]bool{}
	for i, e := range entries {
		if e.RuleID == "" {
			errs = append(errs, LoadError{Index: i, Reason: "missing rule_id"})
			continue
		}
		if seen[e.RuleID] {
			errs = append(errs, LoadError{Index: i, RuleID: e.RuleID, Reason: "duplicate rule_id"})
			continue
		}
		conf := types.Confidence(e.Confidence)
		if !conf.Valid() {
			errs = append(errs, LoadError{Index: i, RuleID: e.RuleID,
				Reason: fmt.Sprintf("invalid confidence %q (want High, Medium or Low)", e.Confidence)})
			continue
		}
		re, cerr := regexp.Compile(e.Regex)
		if cerr != nil {
			errs = append(errs, LoadError{Index: i, RuleID: e.RuleID,
				Reason: fmt.Sprintf("regex does not compile: %v", cerr)})
			continue
		}
		seen[e.RuleID] = true
		p := &Pattern{RuleID: e.RuleID, Description: e.Description, Confidence: conf, re: re}
		reg.byTier[conf] = append(reg.byTier[conf], p)
		reg.count++
	}
	return reg, errs, nil
}

// Validation is the result of a pre-flight check of a pattern source.
type Validation struct {
	Valid        bool        `json:"valid"`
	PatternCount int         `json:"pattern_count"`
	Errors       []LoadError `json:"errors,omitempty"`
}

// Validate runs the same checks as Load without retaining compiled state.
func Validate(src []byte) Validation {
	reg, errs, err := Load(src)
	if err != nil {
		return Validation{Errors: []LoadError{{Reason: err.Error()}}}
	}
	return Validation{Valid: len(errs) == 0, PatternCount: reg.Len(), Errors: errs}
}
