// Package htmlsanitize strips dangerous markup from operator-entered rich
// text before it is stored or rendered.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and javascript: links
// removed. Safe formatting tags and https links survive.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
