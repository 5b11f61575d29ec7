package playback

import (
	"regexp"
	"strings"
)

var (
	boldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe  = regexp.MustCompile(`\*([^*\n]+)\*`)
	codeRe    = regexp.MustCompile("`([^`]+)`")
	linkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	bulletRe  = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
)

// StripMarkdown removes the formatting the adapter tends to emit (bolded
// key terms, headings, bullets) so the synthesis voice does not read the
// punctuation aloud.
func StripMarkdown(text string) string {
	out := boldRe.ReplaceAllString(text, "$1")
	out = italicRe.ReplaceAllString(out, "$1")
	out = codeRe.ReplaceAllString(out, "$1")
	out = linkRe.ReplaceAllString(out, "$1")
	out = headingRe.ReplaceAllString(out, "")
	out = bulletRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
