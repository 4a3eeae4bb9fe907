package pathutil

import (
	"strings"
)

// Separator is the canonical separator used for every path the navigation
// layer touches, regardless of platform.
const Separator = "/"

// NormalizePath converts Windows-style separators to the canonical form and
// strips a single trailing separator. It performs no segment cleaning, so it
// is safe for comparing watcher-reported paths against stored ones.
func NormalizePath(p string) string {
	replaced := strings.ReplaceAll(p, "\\", Separator)
	if len(replaced) > 1 && strings.HasSuffix(replaced, Separator) {
		replaced = strings.TrimSuffix(replaced, Separator)
	}
	return replaced
}

// NormalizeBase canonicalizes a base directory: separators become "/", a
// single trailing separator is stripped, and an empty input degrades to the
// root marker. It never fails.
func NormalizeBase(dir string) string {
	normalized := strings.ReplaceAll(dir, "\\", Separator)
	normalized = strings.TrimSuffix(normalized, Separator)
	if normalized == "" {
		return Separator
	}
	return normalized
}

// Resolve joins a relative reference onto a normalized base directory,
// folding "." and ".." segments. A reference that already starts with the
// canonical separator is treated as absolute and returned as-is. Resolving
// ".." at the root stays at the root. Malformed input degrades to a
// best-effort joined path; Resolve never fails.
//
// An empty relative reference returns the base with a trailing separator.
// Callers should not rely on that trailing separator.
func Resolve(base, relative string) string {
	if strings.HasPrefix(relative, Separator) {
		return relative
	}
	if relative == "" {
		return base + Separator
	}

	segments := splitSegments(base)
	segments = append(segments, splitSegments(strings.ReplaceAll(relative, "\\", Separator))...)

	resolved := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case ".":
			// current directory, nothing to do
		case "..":
			if len(resolved) > 0 {
				resolved = resolved[:len(resolved)-1]
			}
		default:
			resolved = append(resolved, seg)
		}
	}

	return Separator + strings.Join(resolved, Separator)
}

// Within reports whether path lies under dir (or equals it), after
// normalizing both sides.
func Within(dir, path string) bool {
	base := NormalizeBase(dir)
	target := NormalizePath(path)
	if base == Separator {
		return strings.HasPrefix(target, Separator)
	}
	return target == base || strings.HasPrefix(target, base+Separator)
}

func splitSegments(p string) []string {
	parts := strings.Split(p, Separator)
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
