// Package strings holds small string helpers shared across packages
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path like /market to a single leading slash and no trailing slash
// panics on an empty or root-only input
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// NilIfBlank returns nil for nil or whitespace-only input, else a pointer to the trimmed value
func NilIfBlank(ps *string) *string {
	if ps == nil {
		return nil
	}
	v := std.TrimSpace(*ps)
	if v == "" {
		return nil
	}
	return &v
}

// Squash collapses runs of whitespace into a single space and trims the ends
func Squash(s string) string { return std.Join(std.Fields(s), " ") }
