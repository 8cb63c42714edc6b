// Package time contains time helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Clock returns the current time; tests swap it to pin "now"
type Clock func() time.Time

// UTC is the default Clock
func UTC() time.Time { return time.Now().UTC() }

// RFC3339 renders a nullable timestamp for JSON payloads
func RFC3339(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
