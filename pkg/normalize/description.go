package normalize

import (
	"regexp"
	"strings"
)

// tagPattern matches HTML tags including self-closing tags.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// DescriptionText converts the inline markup ComicVine puts in description
// fields into plain note-body text: block-level tags become paragraph
// breaks, remaining tags are stripped, common entities are decoded, and
// whitespace is normalized. Paragraphs are separated by blank lines.
func DescriptionText(html string) string {
	if html == "" {
		return ""
	}

	// Block-level closers and breaks become newlines so paragraph structure
	// survives the tag strip.
	blockTags := []string{"</p>", "</div>", "<br>", "<br/>", "<br />", "</li>", "</h1>", "</h2>", "</h3>", "</h4>", "</h5>", "</h6>"}
	result := html
	for _, tag := range blockTags {
		result = strings.ReplaceAll(result, tag, "\n")
		result = strings.ReplaceAll(result, strings.ToUpper(tag), "\n")
	}

	result = tagPattern.ReplaceAllString(result, "")
	result = decodeEntities(result)

	lines := strings.Split(result, "\n")
	var paragraphs []string
	for _, line := range lines {
		line = strings.TrimSpace(multipleSpaces.ReplaceAllString(line, " "))
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}

	return strings.Join(paragraphs, "\n\n")
}

// decodeEntities decodes the HTML entities that show up in ComicVine
// descriptions.
func decodeEntities(s string) string {
	replacements := []struct {
		entity string
		char   string
	}{
		{"&nbsp;", " "},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#39;", "'"},
		{"&apos;", "'"},
		{"&mdash;", "—"},
		{"&ndash;", "–"},
		{"&hellip;", "…"},
		{"&rsquo;", "’"},
		{"&lsquo;", "‘"},
		{"&rdquo;", "”"},
		{"&ldquo;", "“"},
		{"&copy;", "©"},
		{"&reg;", "®"},
		{"&trade;", "™"},
		// Ampersand last so it doesn't create new entities to decode.
		{"&amp;", "&"},
	}

	result := s
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.entity, r.char)
	}

	return result
}
