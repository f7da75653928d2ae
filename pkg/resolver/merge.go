package resolver

import (
	"github.com/joetting/comic-search/pkg/frontmatter"
)

// accumulatingFields are the list-valued fields the engine owns: they are
// unioned on merge instead of being protected as user-edited scalars, and
// entries are never removed.
var accumulatingFields = map[string]bool{
	"roles":   true,
	"credits": true,
	"tags":    true,
}

// mergeHeader folds fresh fields into an existing document. Scalar fields
// already present are left untouched so manual edits survive re-imports;
// absent fields are populated. Accumulating list fields are unioned with
// membership checks. The body is never touched. It reports whether
// anything changed; the caller owns refreshing the modified timestamp.
func mergeHeader(existing, fresh *frontmatter.Doc) bool {
	changed := false
	for _, field := range fresh.Fields {
		switch {
		case field.Key == "created" || field.Key == "modified":
			// Timestamps are merge metadata, not facts.
			if !existing.Has(field.Key) {
				existing.Set(field.Key, field.Value)
				changed = true
			}
		case accumulatingFields[field.Key]:
			if unionList(existing, field.Key, field.Value) {
				changed = true
			}
		case !existing.Has(field.Key):
			existing.Set(field.Key, field.Value)
			changed = true
		}
	}
	return changed
}

// unionList appends items of fresh missing from the existing list. A
// missing or non-list existing field is replaced wholesale.
func unionList(existing *frontmatter.Doc, key string, fresh frontmatter.Value) bool {
	current, ok := existing.Get(key)
	if !ok || current.Kind != frontmatter.KindList {
		existing.Set(key, fresh)
		return true
	}

	changed := false
	for _, item := range fresh.List {
		if !current.Contains(item) {
			current.List = append(current.List, item)
			changed = true
		}
	}
	if changed {
		existing.Set(key, current)
	}
	return changed
}
