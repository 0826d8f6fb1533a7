// Package sanitizer normalizes user-supplied values before the core
// services compare or persist them.
package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an email address so lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TrimName collapses surrounding whitespace on display names.
func TrimName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
