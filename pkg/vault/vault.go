// Package vault is the document store the import pipeline writes notes
// into: a folder hierarchy of Markdown files with frontmatter headers,
// addressed by vault-relative slash-separated paths.
package vault

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joetting/comic-search/pkg/frontmatter"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Extension is the file extension every note carries.
const Extension = ".md"

// Document is a handle to a note in the vault.
type Document struct {
	Path string // vault-relative, always with Extension
}

// Name returns the note name: the basename without the extension. Notes are
// cross-referenced by this name.
func (d *Document) Name() string {
	return strings.TrimSuffix(path.Base(d.Path), Extension)
}

type cachedHeader struct {
	modTime time.Time
	fields  []frontmatter.Field
}

// Store wraps a filesystem as a vault. The engine never issues concurrent
// writes to the same document; the store only locks around its header
// cache.
type Store struct {
	fs afero.Fs

	mu      sync.Mutex
	headers map[string]cachedHeader
}

// New returns a Store rooted at dir on the host filesystem.
func New(dir string) *Store {
	return NewWithFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewWithFs returns a Store over an arbitrary filesystem. Tests use an
// afero.NewMemMapFs().
func NewWithFs(fsys afero.Fs) *Store {
	return &Store{
		fs:      fsys,
		headers: map[string]cachedHeader{},
	}
}

// Exists reports whether a note or folder exists at the given path.
func (s *Store) Exists(p string) bool {
	_, err := s.fs.Stat(p)
	return err == nil
}

// Create writes a new note. It fails if a note already exists at the path;
// use Modify to change an existing one.
func (s *Store) Create(p, text string) (*Document, error) {
	if s.Exists(p) {
		return nil, errors.Errorf("vault: %s already exists", p)
	}
	if dir := path.Dir(p); dir != "." && dir != "/" {
		if err := s.CreateFolder(dir); err != nil {
			return nil, err
		}
	}
	if err := afero.WriteFile(s.fs, p, []byte(text), 0644); err != nil {
		return nil, errors.WithStack(err)
	}
	return &Document{Path: p}, nil
}

// Modify replaces a note's content.
func (s *Store) Modify(doc *Document, text string) error {
	if err := afero.WriteFile(s.fs, doc.Path, []byte(text), 0644); err != nil {
		return errors.WithStack(err)
	}
	s.mu.Lock()
	delete(s.headers, doc.Path)
	s.mu.Unlock()
	return nil
}

// Read returns a note's full text.
func (s *Store) Read(doc *Document) (string, error) {
	data, err := afero.ReadFile(s.fs, doc.Path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(data), nil
}

// CreateFolder creates a folder (and any missing parents). Creating an
// existing folder is a no-op.
func (s *Store) CreateFolder(p string) error {
	return errors.WithStack(s.fs.MkdirAll(p, 0755))
}

// ListChildren returns the notes directly inside a folder, sorted by path.
// A missing folder yields an empty list.
func (s *Store) ListChildren(folder string) ([]*Document, error) {
	entries, err := afero.ReadDir(s.fs, folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		docs = append(docs, &Document{Path: path.Join(folder, entry.Name())})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// CachedHeader returns a note's parsed header fields without re-reading the
// file when its modification time hasn't changed. The identity lookup scans
// whole folders through this, so the cache is what keeps re-imports cheap.
func (s *Store) CachedHeader(doc *Document) ([]frontmatter.Field, error) {
	info, err := s.fs.Stat(doc.Path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.mu.Lock()
	entry, ok := s.headers[doc.Path]
	s.mu.Unlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.fields, nil
	}

	text, err := s.Read(doc)
	if err != nil {
		return nil, err
	}
	parsed, err := frontmatter.Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "vault: %s", doc.Path)
	}

	s.mu.Lock()
	s.headers[doc.Path] = cachedHeader{modTime: info.ModTime(), fields: parsed.Fields}
	s.mu.Unlock()
	return parsed.Fields, nil
}

// WriteFile writes a raw (non-note) file such as a downloaded cover image.
func (s *Store) WriteFile(p string, data []byte) error {
	if dir := path.Dir(p); dir != "." && dir != "/" {
		if err := s.CreateFolder(dir); err != nil {
			return err
		}
	}
	return errors.WithStack(afero.WriteFile(s.fs, p, data, 0644))
}
