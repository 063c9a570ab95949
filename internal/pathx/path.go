// Package pathx contains helpers for the virtual path namespace emulated on
// top of flat object keys. Directories are keys ending in "/"; the root is
// the empty string.
package pathx

import "strings"

// IsDir reports whether path denotes a directory key.
func IsDir(path string) bool {
	return path == "" || strings.HasSuffix(path, "/")
}

// NormalizePrefix converts a directory path into a listing prefix:
// leading slashes are stripped and a trailing "/" is appended unless the
// path is empty (root).
func NormalizePrefix(dir string) string {
	dir = strings.TrimPrefix(dir, "/")
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir
}

// Join appends name to a directory prefix. The directory is normalized first.
func Join(dir, name string) string {
	return NormalizePrefix(dir) + name
}

// BaseName returns the leaf segment of a key. For directory keys the segment
// before the trailing slash is returned, so BaseName("a/b/") == "b".
func BaseName(key string) string {
	trimmed := strings.TrimSuffix(key, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// ValidName reports whether name is usable as a single path segment:
// non-empty, no separator and no traversal sequence.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	return !strings.Contains(name, "..")
}

// IsDescendant reports whether child is nested under parent (strictly).
// Both arguments are directory keys ending in "/".
func IsDescendant(parent, child string) bool {
	return child != parent && strings.HasPrefix(child, parent)
}
