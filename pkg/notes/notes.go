// Package notes assembles the frontmatter documents for each entity kind.
// Field order within a header is fixed per kind so repeated imports produce
// diff-friendly output.
package notes

import (
	"fmt"
	"time"

	"github.com/joetting/comic-search/pkg/frontmatter"
	"github.com/joetting/comic-search/pkg/normalize"
)

// TimestampFormat is used for the created and modified header fields.
const TimestampFormat = time.RFC3339

// CrossRef renders a display name as a bracketed cross-reference. The name
// is sanitized first so raw API text can never terminate or alter the
// bracket syntax.
func CrossRef(name string) string {
	return "[[" + normalize.SanitizeCrossRef(name) + "]]"
}

// CreditEntry renders one (role, work) credit pair as a list item.
func CreditEntry(role, work string) string {
	return fmt.Sprintf("%s: %s", CrossRef(role), CrossRef(work))
}

// Timestamp formats a time for the created/modified fields.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// dateValue renders a decomposed date as a one-level nested object,
// omitting components the date doesn't carry.
func dateValue(d *normalize.Date) frontmatter.Value {
	fields := []frontmatter.Field{
		{Key: "value", Value: frontmatter.String(d.Value)},
	}
	if d.Year != 0 {
		fields = append(fields, frontmatter.Field{Key: "year", Value: frontmatter.Int(d.Year)})
	}
	if d.Month != 0 {
		fields = append(fields, frontmatter.Field{Key: "month", Value: frontmatter.Int(d.Month)})
	}
	if d.Day != 0 {
		fields = append(fields, frontmatter.Field{Key: "day", Value: frontmatter.Int(d.Day)})
	}
	return frontmatter.Object(fields...)
}

// setDate adds a decomposed date field when the raw string is non-empty.
func setDate(doc *frontmatter.Doc, key, raw string) {
	if d := normalize.DecomposeDate(raw); d != nil {
		doc.Set(key, dateValue(d))
	}
}

// crossRefList renders a list of display names as cross-references,
// skipping names that sanitize to nothing and dropping duplicates.
func crossRefList(names []string) frontmatter.Value {
	list := frontmatter.Strings()
	for _, name := range names {
		if normalize.SanitizeCrossRef(name) == "" {
			continue
		}
		ref := frontmatter.String(CrossRef(name))
		if !list.Contains(ref) {
			list.List = append(list.List, ref)
		}
	}
	return list
}
