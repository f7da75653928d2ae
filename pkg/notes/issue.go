package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/joetting/comic-search/pkg/comicvine"
	"github.com/joetting/comic-search/pkg/frontmatter"
	"github.com/joetting/comic-search/pkg/normalize"
)

// IssueNoteName returns the note name for an issue: the volume name plus
// the issue number, sanitized for use as a file name.
func IssueNoteName(volumeName, issueNumber string) string {
	return normalize.SanitizeFilename(strings.TrimSpace(fmt.Sprintf("%s %s", volumeName, issueNumber)))
}

// IssueOptions carries the assembler inputs that come from outside the
// issue record itself.
type IssueOptions struct {
	PublisherName string
	CoverPath     string // local path to a downloaded cover; preferred over the remote URL
	Now           time.Time
}

// BuildIssue assembles the issue note. Credit fields are grouped by
// semantic role key in the fixed priority order; characters and story arcs
// become cross-reference lists. Empty fields are omitted, except lastRead,
// which is an explicit null placeholder on freshly created notes.
func BuildIssue(issue *comicvine.Issue, opts IssueOptions) *frontmatter.Doc {
	doc := &frontmatter.Doc{}
	doc.Set("id", frontmatter.Int(issue.ID))
	if issue.Name != "" {
		// The title is a plain scalar, not a cross-reference; the serializer
		// quotes whatever needs quoting, so the raw name is kept intact.
		doc.Set("title", frontmatter.String(issue.Name))
	}
	if issue.IssueNumber != "" {
		doc.Set("issue", frontmatter.String(issue.IssueNumber))
	}
	if issue.Volume.Name != "" {
		doc.Set("volume", frontmatter.String(CrossRef(issue.Volume.Name)))
	}
	if opts.PublisherName != "" {
		doc.Set("publisher", frontmatter.String(CrossRef(opts.PublisherName)))
	}
	setDate(doc, "coverDate", issue.CoverDate)
	setDate(doc, "storeDate", issue.StoreDate)

	for _, group := range creditKeys(issue.PersonCredits) {
		if refs := crossRefList(group.names); len(refs.List) > 0 {
			doc.Set(group.key, refs)
		}
	}

	// Guards check the sanitized lists, not the raw input, so a list whose
	// every name sanitizes to nothing is omitted rather than emitted empty.
	if characters := crossRefList(refNames(issue.CharacterCredits)); len(characters.List) > 0 {
		doc.Set("characters", characters)
	}
	if storyArcs := crossRefList(refNames(issue.StoryArcCredits)); len(storyArcs.List) > 0 {
		doc.Set("storyArcs", storyArcs)
	}

	switch {
	case opts.CoverPath != "":
		doc.Set("cover", frontmatter.String(opts.CoverPath))
	case issue.Image.OriginalURL != "":
		doc.Set("cover", frontmatter.String(issue.Image.OriginalURL))
	}

	doc.Set("lastRead", frontmatter.Null())
	doc.Set("tags", frontmatter.Strings("comic", "issue"))
	doc.Set("created", frontmatter.String(Timestamp(opts.Now)))
	doc.Set("modified", frontmatter.String(Timestamp(opts.Now)))

	var body []string
	if issue.Deck != "" {
		body = append(body, normalize.DescriptionText(issue.Deck))
	}
	if issue.Description != "" {
		body = append(body, normalize.DescriptionText(issue.Description))
	}
	doc.Body = strings.Join(body, "\n\n")

	return doc
}

type creditGroup struct {
	key   string
	names []string
}

// creditKeys groups credited people under their semantic role keys,
// ordered by the fixed role priority. People keep their appearance order
// within each group.
func creditKeys(credits []comicvine.Credit) []creditGroup {
	grouped := map[string][]string{}
	var keys []string
	for _, credit := range credits {
		for _, role := range normalize.CanonicalizeRoles(credit.Role) {
			key := normalize.RoleKey(role)
			if _, seen := grouped[key]; !seen {
				keys = append(keys, key)
			}
			grouped[key] = append(grouped[key], credit.Name)
		}
	}
	normalize.SortRoleKeys(keys)

	groups := make([]creditGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, creditGroup{key: key, names: grouped[key]})
	}
	return groups
}

func refNames(refs []comicvine.NameRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}
