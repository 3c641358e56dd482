package engine

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

const (
	// sniffLen bounds how much of a file is inspected for binary content.
	sniffLen = 1024
	// nonPrintableRatio is the fraction of non-printable bytes in the sniffed
	// prefix above which a file is classified binary.
	nonPrintableRatio = 0.30
	// maxLineBytes caps a single line; longer lines abort the file as
	// unreadable rather than buffering unbounded content.
	maxLineBytes = 1 << 20
)

// walkTargets discovers scan targets under cfg.Root and calls emit for each
// eligible file, in the stable lexical order of filepath.WalkDir. Files
// rejected by name, glob, or size are reported through skip. A single-file
// root bypasses all name-based filtering: the caller asked for that file.
func walkTargets(cfg Config, emit func(path, rel string), skip func(rel string)) error {
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("root path %s: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		emit(cfg.Root, filepath.Base(cfg.Root))
		return nil
	}

	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == cfg.Root {
				return fmt.Errorf("root path %s: %w", cfg.Root, err)
			}
			skip(p)
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, rerr := filepath.Rel(cfg.Root, p)
		if rerr != nil {
			rel = p
		}
		if isExcludedFile(strings.ToLower(d.Name())) {
			skip(rel)
			return nil
		}
		if !allowedByGlobs(rel, cfg.IncludeGlobs, cfg.ExcludeGlobs) {
			skip(rel)
			return nil
		}
		if cfg.MaxBytes > 0 {
			if fi, ferr := d.Info(); ferr == nil && fi.Size() > cfg.MaxBytes {
				skip(rel)
				return nil
			}
		}
		emit(p, rel)
		return nil
	})
}

// allowedByGlobs applies comma-separated include globs as a positive filter
// (when present) and exclude globs as a subtraction, using forward-slash
// doublestar semantics against both the relative path and its basename.
func allowedByGlobs(rel, include, exclude string) bool {
	rp := strings.ReplaceAll(rel, "\\", "/")
	if globs := splitGlobs(include); len(globs) > 0 && !matchAnyGlob(rp, globs) {
		return false
	}
	if globs := splitGlobs(exclude); len(globs) > 0 && matchAnyGlob(rp, globs) {
		return false
	}
	return true
}

func splitGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func matchAnyGlob(rel string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// isBinaryPrefix classifies content from a bounded prefix: any NUL byte, or
// a high ratio of non-printable bytes. Bytes >= 0x80 are treated as text so
// UTF-8 multibyte sequences are not misflagged.
func isBinaryPrefix(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	nonPrint := 0
	for _, c := range b {
		if c == 0 {
			return true
		}
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			nonPrint++
		} else if c == 0x7F {
			nonPrint++
		}
	}
	return float64(nonPrint)/float64(len(b)) > nonPrintableRatio
}

// errBinary marks content rejected by the binary sniff.
var errBinary = fmt.Errorf("binary content")

// forEachLine streams r line by line, calling fn with 1-based line numbers.
// It sniffs a bounded prefix first and returns errBinary for non-text input.
// Memory use is bounded by maxLineBytes regardless of input size.
func forEachLine(r io.Reader, fn func(n int, line string)) error {
	br := bufio.NewReaderSize(r, sniffLen)
	prefix, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return err
	}
	if isBinaryPrefix(prefix) {
		return errBinary
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		fn(n, sc.Text())
	}
	return sc.Err()
}
