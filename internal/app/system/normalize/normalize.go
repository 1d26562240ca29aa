// Package normalize trims and canonicalizes operator input before
// validation and storage.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims free-text input (search terms, descriptions, URLs).
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Tags splits a comma-separated tag list into trimmed, non-empty entries,
// preserving order.
func Tags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
