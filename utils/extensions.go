package utils

import (
	"path/filepath"
	"strings"
)

// ExtensionSet is a case-insensitive set of dot-prefixed file extensions.
type ExtensionSet map[string]struct{}

func NewExtensionSet(extensions []string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func (s ExtensionSet) Contains(ext string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[strings.ToLower(ext)]
	return ok
}

// FileExtension returns the lower-cased extension of the last path element,
// from its last dot. A dot at the start of the name does not begin an
// extension, so ".bashrc" has none while "..go" has ".go".
func FileExtension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || name == ".." {
		return ""
	}
	return strings.ToLower(name[i:])
}

// NormalizeExtension turns "*.TXT", "txt" and ".txt" into ".txt".
// An empty or wildcard-only pattern yields "".
func NormalizeExtension(pattern string) string {
	ext := strings.TrimSpace(pattern)
	ext = strings.TrimLeft(ext, "*")
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}
