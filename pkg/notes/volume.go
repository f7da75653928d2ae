package notes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joetting/comic-search/pkg/comicvine"
	"github.com/joetting/comic-search/pkg/frontmatter"
	"github.com/joetting/comic-search/pkg/normalize"
)

// VolumeNoteName returns the note name for a volume: the volume name plus
// the start year when known, so reboots of the same title stay distinct.
func VolumeNoteName(volume *comicvine.Volume) string {
	name := volume.Name
	if volume.StartYear != "" {
		name = fmt.Sprintf("%s (%s)", volume.Name, volume.StartYear)
	}
	return normalize.SanitizeFilename(name)
}

// BuildVolume assembles the volume note. The issue list is included when it
// has been fetched; each entry cross-references the issue note name the
// importer would write.
func BuildVolume(volume *comicvine.Volume, issues []comicvine.IssueSummary, now time.Time) *frontmatter.Doc {
	doc := &frontmatter.Doc{}
	doc.Set("id", frontmatter.Int(volume.ID))
	doc.Set("title", frontmatter.String(volume.Name))
	if year, err := strconv.Atoi(volume.StartYear); err == nil {
		doc.Set("startYear", frontmatter.Int(year))
	}
	if volume.Publisher.Name != "" {
		doc.Set("publisher", frontmatter.String(CrossRef(volume.Publisher.Name)))
	}
	if volume.CountOfIssues > 0 {
		doc.Set("issueCount", frontmatter.Int(volume.CountOfIssues))
	}
	doc.Set("tags", frontmatter.Strings("comic", "volume"))
	doc.Set("created", frontmatter.String(Timestamp(now)))
	doc.Set("modified", frontmatter.String(Timestamp(now)))

	if len(issues) > 0 {
		var lines []string
		lines = append(lines, "## Issues", "")
		for _, issue := range issues {
			line := "- " + CrossRef(IssueNoteName(volume.Name, issue.IssueNumber))
			if issue.Name != "" {
				line += " " + normalize.SanitizeCrossRef(issue.Name)
			}
			lines = append(lines, line)
		}
		doc.Body = strings.Join(lines, "\n")
	}

	return doc
}
