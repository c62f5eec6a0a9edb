package media

import "strings"

// ResolveURL joins a base URL and a site-relative asset path so that
// exactly one slash separates them. It is pure: same inputs, same
// output.
func ResolveURL(base, relPath string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(relPath, "/") {
		relPath = "/" + relPath
	}
	return base + relPath
}

// IsAbsoluteURL reports whether a stored value is already a fully
// qualified URL. The prefix check is a heuristic: a relative path that
// happened to start with "http" would be misclassified, which the
// stored-path shape (always "/uploads/...") rules out in practice.
func IsAbsoluteURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
