// Package artifacts extracts scannable text entries from local archives and
// container image tarballs. It performs no network I/O; everything operates
// on files already present under the scan root.
package artifacts

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Limits bounds how much work a single artifact may consume.
type Limits struct {
	// MaxArchiveBytes caps the decompressed bytes drawn from one artifact.
	MaxArchiveBytes int64
	// MaxEntries caps the number of entries visited per artifact.
	MaxEntries int
}

func (l Limits) bytes() int64 {
	if l.MaxArchiveBytes <= 0 {
		return 32 << 20
	}
	return l.MaxArchiveBytes
}

func (l Limits) entries() int {
	if l.MaxEntries <= 0 {
		return 1000
	}
	return l.MaxEntries
}

// EmitFunc receives one archive entry as a virtual path ("outer!inner") and
// a bounded reader over its decompressed content.
type EmitFunc func(virtualPath string, r io.Reader)

var archiveSkipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "dist": true, "build": true,
}

func walkBySuffix(root string, suffixes []string, visit func(path, rel string)) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		if hasAnySuffix(root, suffixes) {
			visit(root, filepath.Base(root))
		}
		return nil
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && archiveSkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasAnySuffix(d.Name(), suffixes) {
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			rel = p
		}
		visit(p, rel)
		return nil
	})
}

func hasAnySuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// ScanArchives walks root for zip, tar, tar.gz/tgz and gz files and emits
// their entries. Per-artifact failures are logged and skipped; the walk
// itself failing is the only returned error.
func ScanArchives(root string, lim Limits, emit EmitFunc) error {
	return walkBySuffix(root, []string{".zip", ".tar", ".tar.gz", ".tgz", ".gz"}, func(path, rel string) {
		var err error
		switch {
		case strings.HasSuffix(rel, ".zip"):
			err = emitZip(path, rel, lim, emit)
		case strings.HasSuffix(rel, ".tar"):
			err = emitTarFile(path, rel, false, lim, emit)
		case strings.HasSuffix(rel, ".tar.gz"), strings.HasSuffix(rel, ".tgz"):
			err = emitTarFile(path, rel, true, lim, emit)
		case strings.HasSuffix(rel, ".gz"):
			err = emitGzip(path, rel, lim, emit)
		}
		if err != nil {
			log.Debug().Str("artifact", rel).Err(err).Msg("archive skipped")
		}
	})
}

// countingReader tracks how many bytes were actually read, so budgets are
// debited by consumption rather than by header-declared sizes.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func emitZip(path, rel string, lim Limits, emit EmitFunc) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer zr.Close()

	budget := lim.bytes()
	for i, f := range zr.File {
		if i >= lim.entries() || budget <= 0 {
			log.Debug().Str("artifact", rel).Msg("archive limits reached")
			break
		}
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		// Zip size headers are untrusted; an entry claiming zero bytes can
		// still stream content, so the budget tracks what was read.
		cr := &countingReader{r: io.LimitReader(rc, budget)}
		emit(rel+"!"+f.Name, cr)
		_, _ = io.Copy(io.Discard, cr)
		_ = rc.Close()
		budget -= cr.n
	}
	return nil
}

func emitTarFile(path, rel string, gzipped bool, lim Limits, emit EmitFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		r = gz
	}
	return emitTarEntries(r, rel, lim, emit)
}

func emitTarEntries(r io.Reader, rel string, lim Limits, emit EmitFunc) error {
	tr := tar.NewReader(r)
	budget := lim.bytes()
	seen := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if seen >= lim.entries() || budget <= 0 {
			log.Debug().Str("artifact", rel).Msg("archive limits reached")
			return nil
		}
		seen++
		lr := io.LimitReader(tr, budget)
		emit(rel+"!"+hdr.Name, lr)
		_, _ = io.Copy(io.Discard, lr)
		budget -= hdr.Size
	}
}

func emitGzip(path, rel string, lim Limits, emit EmitFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()
	inner := strings.TrimSuffix(filepath.Base(rel), ".gz")
	emit(fmt.Sprintf("%s!%s", rel, inner), io.LimitReader(gz, lim.bytes()))
	return nil
}
