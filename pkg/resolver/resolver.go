// Package resolver locates the document representing an external entity and
// merges fresh facts into it. Each upsert moves through a search (by stable
// external id, then by sanitized name), a merge against whatever was found,
// and ends as a create, an update, or a no-op.
package resolver

import (
	"path"
	"time"

	"github.com/joetting/comic-search/pkg/comicvine"
	"github.com/joetting/comic-search/pkg/frontmatter"
	"github.com/joetting/comic-search/pkg/normalize"
	"github.com/joetting/comic-search/pkg/notes"
	"github.com/joetting/comic-search/pkg/vault"
	"github.com/pkg/errors"
)

// Outcome is the terminal state of one upsert.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Folders names the vault folders each entity kind lives in.
type Folders struct {
	Issues   string
	Volumes  string
	Creators string
	Roles    string
}

// Resolver owns identity lookup and upsert for every entity kind.
type Resolver struct {
	store   *vault.Store
	folders Folders
	now     func() time.Time
}

// New returns a Resolver writing into the given folders.
func New(store *vault.Store, folders Folders) *Resolver {
	return &Resolver{store: store, folders: folders, now: time.Now}
}

// findByID scans a folder for a document whose stored external id matches.
// Lookup goes through the store's cached headers, so repeated scans don't
// re-parse unchanged notes.
func (r *Resolver) findByID(folder string, id int) (*vault.Document, error) {
	docs, err := r.store.ListChildren(folder)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		fields, err := r.store.CachedHeader(doc)
		if err != nil {
			// An unparseable note shouldn't block identity resolution.
			continue
		}
		header := frontmatter.Doc{Fields: fields}
		if v, ok := header.Get("id"); ok && v.Kind == frontmatter.KindInt && v.Int == id {
			return doc, nil
		}
	}
	return nil, nil
}

// findByName falls back to a filename match on the sanitized display name.
func (r *Resolver) findByName(folder, name string) *vault.Document {
	p := path.Join(folder, normalize.SanitizeFilename(name)+vault.Extension)
	if r.store.Exists(p) {
		return &vault.Document{Path: p}
	}
	return nil
}

// FindPerson locates the existing document for a person, by external id
// first and sanitized name second. It returns nil when no document
// represents the person yet.
func (r *Resolver) FindPerson(id int, name string) (*vault.Document, error) {
	doc, err := r.findByID(r.folders.Creators, id)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	return r.findByName(r.folders.Creators, name), nil
}

// UpsertPerson creates or merges the document for a person. Roles are
// canonical role names; credits are rendered (role, work) entries. Existing
// scalar facts and the note body are preserved; the role and credit lists
// only grow.
func (r *Resolver) UpsertPerson(person *comicvine.Person, roles []string, credits []string) (Outcome, error) {
	fresh := notes.BuildPerson(person, roles, credits, r.now())

	existing, err := r.FindPerson(person.ID, person.Name)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if existing == nil {
		p := path.Join(r.folders.Creators, notes.PersonNoteName(person.Name)+vault.Extension)
		if _, err := r.store.Create(p, frontmatter.Serialize(fresh)); err != nil {
			return OutcomeUnchanged, err
		}
		return OutcomeCreated, nil
	}

	return r.mergeInto(existing, fresh)
}

// UpsertVolume creates or merges a volume document.
func (r *Resolver) UpsertVolume(volume *comicvine.Volume, issues []comicvine.IssueSummary) (Outcome, error) {
	fresh := notes.BuildVolume(volume, issues, r.now())

	existing, err := r.findByID(r.folders.Volumes, volume.ID)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if existing == nil {
		existing = r.findByName(r.folders.Volumes, notes.VolumeNoteName(volume))
	}
	if existing == nil {
		p := path.Join(r.folders.Volumes, notes.VolumeNoteName(volume)+vault.Extension)
		if _, err := r.store.Create(p, frontmatter.Serialize(fresh)); err != nil {
			return OutcomeUnchanged, err
		}
		return OutcomeCreated, nil
	}

	return r.mergeInto(existing, fresh)
}

// ResolveRole creates the documents for a role concept and its ancestors.
// Parents resolve before children so a child's subConceptOf link always
// points at an existing note. The visited set guards against cycles should
// the hierarchy table ever grow one: a name already in progress is not
// resolved again.
func (r *Resolver) ResolveRole(role string) error {
	return r.resolveRole(normalize.CanonicalizeRole(role), map[string]bool{})
}

func (r *Resolver) resolveRole(role string, visited map[string]bool) error {
	if role == "" || visited[role] {
		return nil
	}
	visited[role] = true

	parent, hasParent := normalize.RoleParent(role)
	if hasParent {
		parent = normalize.CanonicalizeRole(parent)
		if err := r.resolveRole(parent, visited); err != nil {
			return err
		}
	}

	fresh := notes.BuildRole(role, parent, r.now())
	p := path.Join(r.folders.Roles, notes.RoleNoteName(role)+vault.Extension)
	if !r.store.Exists(p) {
		_, err := r.store.Create(p, frontmatter.Serialize(fresh))
		return err
	}

	// The note already exists; merge in case an earlier version was created
	// without its parent link.
	_, err := r.mergeInto(&vault.Document{Path: p}, fresh)
	return err
}

// WriteIssue writes an issue document. Unlike the other kinds an existing
// issue note is not merged: replacing it is the caller's decision, made
// before any network fetching started.
func (r *Resolver) WriteIssue(name string, doc *frontmatter.Doc, overwrite bool) (Outcome, error) {
	p := path.Join(r.folders.Issues, name+vault.Extension)
	text := frontmatter.Serialize(doc)

	if r.store.Exists(p) {
		if !overwrite {
			return OutcomeUnchanged, errors.Errorf("issue note %s already exists", p)
		}
		if err := r.store.Modify(&vault.Document{Path: p}, text); err != nil {
			return OutcomeUnchanged, err
		}
		return OutcomeUpdated, nil
	}

	if _, err := r.store.Create(p, text); err != nil {
		return OutcomeUnchanged, err
	}
	return OutcomeCreated, nil
}

// IssueNoteExists reports whether the issue note is already present, so the
// caller can make the overwrite decision before fetching anything.
func (r *Resolver) IssueNoteExists(name string) bool {
	return r.store.Exists(path.Join(r.folders.Issues, name+vault.Extension))
}

// mergeInto merges the fresh document's header into an existing note,
// preserving the body verbatim, and writes only when something changed.
func (r *Resolver) mergeInto(existing *vault.Document, fresh *frontmatter.Doc) (Outcome, error) {
	text, err := r.store.Read(existing)
	if err != nil {
		return OutcomeUnchanged, err
	}
	doc, err := frontmatter.Parse(text)
	if err != nil {
		return OutcomeUnchanged, errors.Wrapf(err, "resolver: %s", existing.Path)
	}

	if !mergeHeader(doc, fresh) {
		return OutcomeUnchanged, nil
	}

	doc.Set("modified", frontmatter.String(notes.Timestamp(r.now())))
	if err := r.store.Modify(existing, frontmatter.Serialize(doc)); err != nil {
		return OutcomeUnchanged, err
	}
	return OutcomeUpdated, nil
}
