package engine

import "strings"

// Directories pruned before descent. This is a fixed noise/efficiency rule,
// not user configuration; include/exclude globs layer on top.
var excludedDirs = map[string]bool{
	".git":          true,
	".svn":          true,
	".hg":           true,
	".bzr":          true,
	"node_modules":  true,
	"vendor":        true,
	"__pycache__":   true,
	".pytest_cache": true,
	"venv":          true,
	".venv":         true,
	"virtualenv":    true,
	"build":         true,
	"dist":          true,
	"target":        true,
	"out":           true,
	"bin":           true,
	"obj":           true,
	".idea":         true,
	".vscode":       true,
	".vs":           true,
	"coverage":      true,
	".nyc_output":   true,
}

// Suffixes that are always binary or generated noise; cheaper to reject by
// name than to sniff content.
var excludedSuffixes = []string{
	".exe", ".dll", ".so", ".dylib", ".bin", ".wasm",
	".jar", ".war", ".ear", ".class", ".o", ".obj", ".pyc", ".pyo",
	".zip", ".tar", ".gz", ".tgz", ".bz2", ".xz", ".rar", ".7z",
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".webp", ".ico", ".svg",
	".mp3", ".mp4", ".avi", ".mov", ".wmv", ".flv",
	".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx",
	".min.js", ".map",
}

func isExcludedDir(name string) bool {
	return excludedDirs[name]
}

func isExcludedFile(lowerName string) bool {
	for _, s := range excludedSuffixes {
		if strings.HasSuffix(lowerName, s) {
			return true
		}
	}
	return false
}
