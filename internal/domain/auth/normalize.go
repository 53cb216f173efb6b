package auth

import "strings"

// normalizeEmail lowercases and trims an address so lookups and the unique
// index agree on one canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
