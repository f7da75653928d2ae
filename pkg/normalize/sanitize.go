package normalize

import (
	"regexp"
	"strings"
)

var (
	// Characters that would break the [[...]] cross-reference syntax.
	crossRefUnsafe = regexp.MustCompile(`[\[\]|^#]`)

	// Characters that are invalid in note file names. Conservative across
	// operating systems, plus the cross-reference breakers.
	filenameUnsafe = regexp.MustCompile(`[<>:"/\\|?*#^\[\]\x00-\x1f]`)

	multipleSpaces  = regexp.MustCompile(`\s+`)
	tagDisallowed   = regexp.MustCompile(`[^a-z0-9-]`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// SanitizeCrossRef strips characters that would prematurely terminate or
// alter a bracketed cross-reference, then collapses and trims whitespace.
// Every display name must pass through here before being embedded in a
// cross-reference.
func SanitizeCrossRef(name string) string {
	name = crossRefUnsafe.ReplaceAllString(name, "")
	name = multipleSpaces.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// SanitizeTag turns free text into a tag: lowercase, spaces to hyphens,
// everything outside [a-z0-9-] stripped, repeated hyphens collapsed, and
// leading/trailing hyphens trimmed. An empty result falls back to "unknown".
func SanitizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = tagDisallowed.ReplaceAllString(s, "")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unknown"
	}
	return s
}

// SanitizeFilename removes characters that are illegal in note file names
// and trims the result. Trailing dots are trimmed too since Windows rejects
// them.
func SanitizeFilename(name string) string {
	name = filenameUnsafe.ReplaceAllString(name, "")
	name = multipleSpaces.ReplaceAllString(name, " ")
	return strings.Trim(name, " .")
}
