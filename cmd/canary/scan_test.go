package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/canarysec/canary/internal/engine"
)

func TestLoadRegistry_Builtin(t *testing.T) {
	reg, loadErrs, err := loadRegistry("")
	if err != nil {
		t.Fatal(err)
	}
	if len(loadErrs) != 0 || reg.Len() == 0 {
		t.Fatalf("reg=%d loadErrs=%v", reg.Len(), loadErrs)
	}
}

func TestLoadRegistry_CustomFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "rules.yml")
	src := "patterns:\n  - {rule_id: X-001, description: x, regex: 'x+', confidence: Low}\n"
	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, _, err := loadRegistry(p)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 1 {
		t.Fatalf("len = %d", reg.Len())
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	if _, _, err := loadRegistry(filepath.Join(t.TempDir(), "gone.yml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadRegistry_EmptyRulesetIsFatal(t *testing.T) {
	p := filepath.Join(t.TempDir(), "rules.yml")
	if err := os.WriteFile(p, []byte("patterns: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := loadRegistry(p)
	if !errors.Is(err, engine.ErrNoPatterns) {
		t.Fatalf("err = %v", err)
	}
}

func TestPickPrecedence(t *testing.T) {
	local, global := "local", "global"
	if got := pickString("flag", &local, &global); got != "flag" {
		t.Fatalf("flag should win, got %q", got)
	}
	if got := pickString("", &local, &global); got != "local" {
		t.Fatalf("local should beat global, got %q", got)
	}
	if got := pickString("", nil, &global); got != "global" {
		t.Fatalf("global is the last resort, got %q", got)
	}
	if got := pickString("", nil, nil); got != "" {
		t.Fatalf("all unset yields zero, got %q", got)
	}

	lb, gb := false, true
	if pickBool(false, &lb, &gb) {
		t.Fatal("explicit local false must suppress global true")
	}
	ln := 0
	if got := pickInt(0, &ln, nil); got != 0 {
		t.Fatalf("got %d", got)
	}
}
