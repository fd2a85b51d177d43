package utils

import (
	"path/filepath"
	"strings"
)

// IsPathWithin reports whether path equals root or lies underneath it.
// Symlinks are resolved when possible so aliases of the same folder compare equal.
func IsPathWithin(path, root string) bool {
	absPath, ok := resolve(path)
	if !ok {
		return false
	}
	absRoot, ok := resolve(root)
	if !ok {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func resolve(path string) (string, bool) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	return abs, true
}
