package notes

import (
	"time"

	"github.com/joetting/comic-search/pkg/comicvine"
	"github.com/joetting/comic-search/pkg/frontmatter"
	"github.com/joetting/comic-search/pkg/normalize"
)

// PersonNoteName returns the note name for a person.
func PersonNoteName(name string) string {
	return normalize.SanitizeFilename(name)
}

// BuildPerson assembles a fresh person note. Roles are role-concept
// cross-references; credits are rendered (role, work) pairs. Both lists
// only ever grow on later imports, handled by the resolver's merge.
func BuildPerson(person *comicvine.Person, roles []string, credits []string, now time.Time) *frontmatter.Doc {
	doc := &frontmatter.Doc{}
	doc.Set("id", frontmatter.Int(person.ID))
	doc.Set("name", frontmatter.String(person.Name))
	setDate(doc, "birth", person.Birth)
	setDate(doc, "death", person.Death)

	if len(roles) > 0 {
		doc.Set("roles", crossRefList(roles))
	}
	if len(credits) > 0 {
		doc.Set("credits", frontmatter.Strings(credits...))
	}
	doc.Set("tags", frontmatter.Strings("creator"))
	doc.Set("created", frontmatter.String(Timestamp(now)))
	doc.Set("modified", frontmatter.String(Timestamp(now)))

	return doc
}
