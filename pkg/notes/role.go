package notes

import (
	"time"

	"github.com/joetting/comic-search/pkg/frontmatter"
	"github.com/joetting/comic-search/pkg/normalize"
)

// RoleNoteName returns the note name for a role concept.
func RoleNoteName(role string) string {
	return normalize.SanitizeFilename(normalize.CanonicalizeRole(role))
}

// BuildRole assembles a role-concept note. The subConceptOf link is only
// present for roles with a parent concept.
func BuildRole(role, parent string, now time.Time) *frontmatter.Doc {
	doc := &frontmatter.Doc{}
	doc.Set("name", frontmatter.String(role))
	if parent != "" {
		doc.Set("subConceptOf", frontmatter.String(CrossRef(parent)))
	}
	doc.Set("tags", frontmatter.Strings("role"))
	doc.Set("created", frontmatter.String(Timestamp(now)))
	doc.Set("modified", frontmatter.String(Timestamp(now)))
	return doc
}
