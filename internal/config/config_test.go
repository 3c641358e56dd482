package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "canary.yml")
	writeConfig(t, p, `
patterns: custom.yml
exclude: "**/*_test.go,docs/**"
threads: 8
fail_on: high
medium_entropy: 3.8
archives: true
`)

	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Patterns == nil || *cfg.Patterns != "custom.yml" {
		t.Fatalf("patterns = %v", cfg.Patterns)
	}
	if cfg.Threads == nil || *cfg.Threads != 8 {
		t.Fatalf("threads = %v", cfg.Threads)
	}
	if cfg.FailOn == nil || *cfg.FailOn != "high" {
		t.Fatalf("fail_on = %v", cfg.FailOn)
	}
	if cfg.MediumEntropy == nil || *cfg.MediumEntropy != 3.8 {
		t.Fatalf("medium_entropy = %v", cfg.MediumEntropy)
	}
	if cfg.Archives == nil || !*cfg.Archives {
		t.Fatalf("archives = %v", cfg.Archives)
	}
	// unset keys stay nil so precedence can tell "absent" from "zero"
	if cfg.Include != nil || cfg.MaxBytes != nil || cfg.NoColor != nil {
		t.Fatalf("unset fields populated: %+v", cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "canary.yml")
	writeConfig(t, p, "threads: [not an int\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLocal_DotfileWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".canary.yml"), "threads: 2\n")
	writeConfig(t, filepath.Join(dir, "canary.yml"), "threads: 16\n")

	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threads == nil || *cfg.Threads != 2 {
		t.Fatalf("threads = %v, want dotfile's 2", cfg.Threads)
	}
}

func TestLoadLocal_PlainName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "canary.yaml"), "fail_on: low\n")

	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FailOn == nil || *cfg.FailOn != "low" {
		t.Fatalf("fail_on = %v", cfg.FailOn)
	}
}

func TestLoadLocal_Absent(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); err == nil {
		t.Fatal("expected error when no local config exists")
	}
}

func TestLoadGlobal_XDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	writeConfig(t, filepath.Join(base, "canary", "config.yml"), "reveal_length: 6\n")

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reveal == nil || *cfg.Reveal != 6 {
		t.Fatalf("reveal_length = %v", cfg.Reveal)
	}
}

func TestLoadGlobal_Absent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := LoadGlobal(); err == nil {
		t.Fatal("expected error when no global config exists")
	}
}
