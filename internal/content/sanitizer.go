package content

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips dangerous HTML from note content before it is persisted.
// Note bodies arrive as rich-text HTML, both from the frontend editor and
// from the assistant's editing tools, so everything written to the store
// passes through here.
//
// Thread-safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with a UGC policy: common formatting is
// preserved, scripts, event handlers and javascript: URLs are stripped.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	return &Sanitizer{policy: policy}
}

// Sanitize removes dangerous HTML while preserving safe content.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
