// Path canonicalization and the skip rules applied during a bulk pass:
// symlink-escape detection, dot-segments, size cap, and the
// supported-extension filter.
package indexer

import (
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the per-file read cap (1 MB).
const MaxFileSize = 1 << 20

// canonicalize resolves path to an absolute, symlink-free form and
// reports whether it still lives under root once resolved. A symlink
// that points outside root is rejected rather than followed.
func canonicalize(root, path string) (string, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false, err
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		rootResolved = root
	}
	rootResolved, err = filepath.Abs(rootResolved)
	if err != nil {
		return "", false, err
	}

	if resolved != rootResolved && !strings.HasPrefix(resolved, rootResolved+string(os.PathSeparator)) {
		return resolved, false, nil
	}
	return resolved, true, nil
}

// hasDotSegment reports whether any path component (other than the root
// itself) starts with a dot, e.g. ".git", ".cache".
func hasDotSegment(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// extensionOf returns the lowercased extension without its leading dot,
// empty if the filename has no suffix after a '.'.
func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
