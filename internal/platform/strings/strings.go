// Package strings holds small string and slice helpers shared by the platform
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Has reports whether v is in list
func Has[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// MustPrefix normalizes a mount path like /dummy: one leading slash, no trailing slash.
// Panics when nothing but slashes and spaces remain
func MustPrefix(s string) string {
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// NilIfBlank returns nil when ps is nil or holds only whitespace, else ps
func NilIfBlank(ps *string) *string {
	if ps == nil || std.TrimSpace(*ps) == "" {
		return nil
	}
	return ps
}
