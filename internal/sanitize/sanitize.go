// Package sanitize strips dangerous HTML from user-submitted text before
// it is stored. Comments and post bodies are user-generated content, so
// everything passes through a bluemonday policy.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc allows the usual formatting tags readers expect in comments and
	// post bodies while removing scripts, event handlers, and embeds.
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup; used for titles and excerpts.
	strict = bluemonday.StrictPolicy()
)

// HTML sanitizes user content that may legitimately contain markup.
func HTML(s string) string {
	return ugc.Sanitize(s)
}

// Text strips every tag, leaving plain text only.
func Text(s string) string {
	return strict.Sanitize(s)
}
