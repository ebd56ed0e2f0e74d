// Package htmlsanitize strips dangerous markup from user-generated text
// before it is persisted. Comment text is the only user-authored rich
// content in the API, so the policy allows basic formatting and safe
// links, nothing more.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "mark")
	return p
}

// Sanitize returns s with scripts, event handlers, and unsafe URLs
// removed. Basic formatting tags and safe links survive.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
