// Package pathutil provides the path-segment helpers shared by the sysfs
// walker and the metadata store.
//
// Ancestry over a device-tree path is defined purely by truncating the last
// "/segment"; it never follows "..". That is deliberately not filepath.Dir,
// which maps "/block" to "/" and "x" to "." instead of terminating at the
// empty string.
package pathutil

import "strings"

// TrimTrailingSlash removes a single trailing path separator, leaving a bare
// "/" untouched only long enough for Up to terminate on it.
func TrimTrailingSlash(p string) string {
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return p[:len(p)-1]
	}
	return p
}

// Up truncates the final "/segment" from p. It returns the empty string once
// the tree root is reached, which is the walk termination condition.
func Up(p string) string {
	p = TrimTrailingSlash(p)
	i := strings.LastIndexByte(p, '/')
	if i <= 0 {
		return ""
	}
	return p[:i]
}

// LastSegment returns the final path segment of p, or the empty string when
// p has none.
func LastSegment(p string) string {
	p = TrimTrailingSlash(p)
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return p
	}
	return p[i+1:]
}
