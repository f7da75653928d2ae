// Package importer drives a search-and-import operation end to end: issue
// detail, volume detail, per-creator details, then role, creator, volume,
// and issue notes, in that order. All network traffic goes through the
// rate-limited client; a document is only ever written after everything it
// needs has been fetched.
package importer

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/joetting/comic-search/pkg/comicvine"
	"github.com/joetting/comic-search/pkg/errcodes"
	"github.com/joetting/comic-search/pkg/normalize"
	"github.com/joetting/comic-search/pkg/notes"
	"github.com/joetting/comic-search/pkg/resolver"
	"github.com/joetting/comic-search/pkg/vault"
	"github.com/robinjoseph08/golib/logger"
)

// API is the slice of the ComicVine client the importer consumes.
type API interface {
	Search(ctx context.Context, query string) ([]comicvine.SearchResult, error)
	Issue(ctx context.Context, id int) (*comicvine.Issue, error)
	Volume(ctx context.Context, id int) (*comicvine.Volume, error)
	VolumeIssues(ctx context.Context, volumeID int) ([]comicvine.IssueSummary, error)
	Person(ctx context.Context, id int) (*comicvine.Person, error)
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Options are the feature toggles for one importer instance.
type Options struct {
	CreateCreatorNotes bool
	CreateRoleNotes    bool
	CreateVolumeNotes  bool
	DownloadImages     bool
	AttachmentsFolder  string
}

// Report summarizes one import operation.
type Report struct {
	OperationID  string
	IssueNote    string
	IssueOutcome resolver.Outcome
	Creators     int
	Failures     []string
}

// Importer owns the orchestration flow. It never issues concurrent
// requests: every fetch goes through the client's serialized gate in
// sequence.
type Importer struct {
	api      API
	store    *vault.Store
	resolver *resolver.Resolver
	opts     Options
	notifier Notifier
	now      func() time.Time
}

// New returns an Importer. A nil notifier falls back to the logger.
func New(api API, store *vault.Store, res *resolver.Resolver, opts Options, notifier Notifier) *Importer {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &Importer{
		api:      api,
		store:    store,
		resolver: res,
		opts:     opts,
		notifier: notifier,
		now:      time.Now,
	}
}

// Search runs a keyword search across issues and volumes.
func (imp *Importer) Search(ctx context.Context, query string) ([]comicvine.SearchResult, error) {
	log := logger.FromContext(ctx)
	results, err := imp.api.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Info("search finished", logger.Data{"query": query, "results": len(results)})
	return results, nil
}

// creatorFacts accumulates what one credited person contributes to the
// import: their detail record, canonical roles, and rendered credits.
type creatorFacts struct {
	person  *comicvine.Person
	roles   []string
	credits []string
}

// ImportIssue imports a single issue and its related notes. Failures
// fetching the issue or volume are fatal for the import; a failure on one
// creator is reported and that creator skipped. Cancellation unwinds
// before any document write for data not yet fully fetched.
func (imp *Importer) ImportIssue(ctx context.Context, issueID int, overwrite bool) (*Report, error) {
	report := &Report{OperationID: uuid.NewString()}
	log := logger.FromContext(ctx).Data(logger.Data{"import_id": report.OperationID, "issue_id": issueID})
	ctx = log.WithContext(ctx)

	issue, err := imp.api.Issue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	noteName := notes.IssueNoteName(issue.Volume.Name, issue.IssueNumber)
	report.IssueNote = noteName
	if imp.resolver.IssueNoteExists(noteName) && !overwrite {
		return nil, errcodes.NoteExists(noteName)
	}

	volume, err := imp.api.Volume(ctx, issue.Volume.ID)
	if err != nil {
		return nil, err
	}

	creators, err := imp.fetchCreators(ctx, issue, noteName, report)
	if err != nil {
		return nil, err
	}

	// Role and creator notes are written before the issue note so its
	// cross-references resolve the moment it lands.
	if imp.opts.CreateRoleNotes {
		if err := imp.resolveRoles(ctx, issue); err != nil {
			return nil, err
		}
	}
	if imp.opts.CreateCreatorNotes {
		for _, facts := range creators {
			outcome, err := imp.resolver.UpsertPerson(facts.person, facts.roles, facts.credits)
			if err != nil {
				return nil, err
			}
			report.Creators++
			log.Info("creator note resolved", logger.Data{"name": facts.person.Name, "outcome": outcome.String()})
		}
	}

	if imp.opts.CreateVolumeNotes {
		if err := imp.writeVolumeNote(ctx, volume, log); err != nil {
			return nil, err
		}
	}

	coverPath := ""
	if imp.opts.DownloadImages && issue.Image.OriginalURL != "" {
		coverPath = imp.downloadCover(ctx, issue.Image.OriginalURL, noteName, report)
		if cerr := errcodes.FromContext(ctx); cerr != nil {
			return nil, cerr
		}
	}

	doc := notes.BuildIssue(issue, notes.IssueOptions{
		PublisherName: volume.Publisher.Name,
		CoverPath:     coverPath,
		Now:           imp.now(),
	})
	outcome, err := imp.resolver.WriteIssue(noteName, doc, overwrite)
	if err != nil {
		return nil, err
	}
	report.IssueOutcome = outcome
	log.Info("issue imported", logger.Data{"note": noteName, "outcome": outcome.String()})
	return report, nil
}

// fetchCreators fetches the detail record of every credited person, in
// credit order, deduplicated by id. One creator's failure doesn't abort the
// rest, but cancellation does.
func (imp *Importer) fetchCreators(ctx context.Context, issue *comicvine.Issue, noteName string, report *Report) ([]*creatorFacts, error) {
	if !imp.opts.CreateCreatorNotes {
		return nil, nil
	}
	log := logger.FromContext(ctx)

	byID := map[int]*creatorFacts{}
	var ordered []*creatorFacts
	for _, credit := range issue.PersonCredits {
		facts := byID[credit.ID]
		if facts == nil {
			person, err := imp.api.Person(ctx, credit.ID)
			if err != nil {
				if errcodes.IsCancelled(err) {
					return nil, errcodes.Cancelled()
				}
				msg := fmt.Sprintf("Could not fetch details for %s: %v", credit.Name, err)
				imp.notifier.Notify(ctx, msg)
				report.Failures = append(report.Failures, msg)
				log.Warn("creator fetch failed", logger.Data{"person_id": credit.ID, "name": credit.Name, "error": err.Error()})
				continue
			}
			facts = &creatorFacts{person: person}
			byID[credit.ID] = facts
			ordered = append(ordered, facts)
		}
		for _, role := range normalize.CanonicalizeRoles(credit.Role) {
			facts.roles = appendMissing(facts.roles, role)
			facts.credits = appendMissing(facts.credits, notes.CreditEntry(role, noteName))
		}
	}
	return ordered, nil
}

// resolveRoles creates the role-concept notes for every role credited on
// the issue. Roles come straight from the credit strings, so they resolve
// whether or not creator notes are enabled.
func (imp *Importer) resolveRoles(ctx context.Context, issue *comicvine.Issue) error {
	seen := map[string]bool{}
	for _, credit := range issue.PersonCredits {
		for _, role := range normalize.CanonicalizeRoles(credit.Role) {
			if seen[role] {
				continue
			}
			seen[role] = true
			if cerr := errcodes.FromContext(ctx); cerr != nil {
				return cerr
			}
			if err := imp.resolver.ResolveRole(role); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeVolumeNote upserts the volume note, pulling the issue listing on
// demand when the detail record didn't include one.
func (imp *Importer) writeVolumeNote(ctx context.Context, volume *comicvine.Volume, log logger.Logger) error {
	issues := volume.Issues
	if len(issues) == 0 {
		fetched, err := imp.api.VolumeIssues(ctx, volume.ID)
		if err != nil {
			if errcodes.IsCancelled(err) {
				return errcodes.Cancelled()
			}
			// The listing is optional; the note is still worth writing.
			imp.notifier.Notify(ctx, fmt.Sprintf("Could not fetch issue list for %s: %v", volume.Name, err))
		} else {
			issues = fetched
		}
	}

	outcome, err := imp.resolver.UpsertVolume(volume, issues)
	if err != nil {
		return err
	}
	log.Info("volume note resolved", logger.Data{"name": volume.Name, "outcome": outcome.String()})
	return nil
}

// downloadCover fetches the cover art and stores it under the attachments
// folder, returning the vault path. Failures are reported and leave the
// issue note pointing at the remote URL instead.
func (imp *Importer) downloadCover(ctx context.Context, imageURL, noteName string, report *Report) string {
	log := logger.FromContext(ctx)

	data, err := imp.api.DownloadImage(ctx, imageURL)
	if err != nil {
		if errcodes.IsCancelled(err) {
			return ""
		}
		msg := fmt.Sprintf("Could not download cover for %s: %v", noteName, err)
		imp.notifier.Notify(ctx, msg)
		report.Failures = append(report.Failures, msg)
		return ""
	}

	ext := mimetype.Detect(data).Extension()
	if ext == "" {
		ext = ".jpg"
	}
	coverPath := path.Join(imp.opts.AttachmentsFolder, noteName+ext)
	if err := imp.store.WriteFile(coverPath, data); err != nil {
		msg := fmt.Sprintf("Could not save cover for %s: %v", noteName, err)
		imp.notifier.Notify(ctx, msg)
		report.Failures = append(report.Failures, msg)
		return ""
	}
	log.Info("cover downloaded", logger.Data{"path": coverPath, "bytes": len(data)})
	return coverPath
}

func appendMissing(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
