package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joetting/comic-search/pkg/comicvine"
	"github.com/joetting/comic-search/pkg/config"
	"github.com/joetting/comic-search/pkg/importer"
	"github.com/joetting/comic-search/pkg/resolver"
	"github.com/joetting/comic-search/pkg/vault"
	"github.com/joetting/comic-search/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	ctx, cancel := context.WithCancel(log.WithContext(context.Background()))
	graceful := signals.Setup()
	go func() {
		<-graceful
		log.Info("cancelling")
		cancel()
	}()

	app := &cli.App{
		Name:    "comic-search",
		Usage:   "search ComicVine and write cross-linked comic notes into a vault",
		Version: version.Version,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "search issues and volumes by keyword",
				ArgsUsage: "<query>",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("a search query is required")
					}
					return runSearch(ctx, c.Args().Slice()[0])
				},
			},
			{
				Name:      "import",
				Usage:     "import an issue and its related notes by ComicVine issue id",
				ArgsUsage: "<issue-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "overwrite",
						Usage: "replace an existing issue note",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("an issue id is required")
					}
					id, err := strconv.Atoi(c.Args().Slice()[0])
					if err != nil {
						return errors.Errorf("invalid issue id %q", c.Args().Slice()[0])
					}
					return runImport(ctx, id, c.Bool("overwrite"))
				},
			},
			{
				Name:  "config",
				Usage: "manage configuration",
				Subcommands: []*cli.Command{
					{
						Name:  "init",
						Usage: "write a starter config file",
						Action: func(c *cli.Context) error {
							path := config.FilePath()
							if err := config.WriteStarter(path); err != nil {
								return err
							}
							fmt.Printf("Wrote %s\n", path)
							return nil
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("comic-search failed")
	}
}

// stdoutNotifier prints import notices directly for interactive use.
type stdoutNotifier struct{}

func (stdoutNotifier) Notify(_ context.Context, message string) {
	fmt.Println(message)
}

func buildImporter(cfg *config.Config) *importer.Importer {
	client := comicvine.New(comicvine.Options{
		APIKey:   cfg.APIKey,
		Interval: cfg.RateLimitInterval(),
	})
	store := vault.New(cfg.VaultDir)
	res := resolver.New(store, resolver.Folders{
		Issues:   cfg.IssuesFolder,
		Volumes:  cfg.VolumesFolder,
		Creators: cfg.CreatorsFolder,
		Roles:    cfg.RolesFolder,
	})
	return importer.New(client, store, res, importer.Options{
		CreateCreatorNotes: cfg.CreateCreatorNotes,
		CreateRoleNotes:    cfg.CreateRoleNotes,
		CreateVolumeNotes:  cfg.CreateVolumeNotes,
		DownloadImages:     cfg.DownloadImages,
		AttachmentsFolder:  cfg.AttachmentsFolder,
	}, stdoutNotifier{})
}

func runSearch(ctx context.Context, query string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	results, err := buildImporter(cfg).Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Kind", "ID", "Name", "Issue", "Year", "Volume"})
	for _, r := range results {
		volumeName := ""
		if r.Volume != nil {
			volumeName = r.Volume.Name
		}
		t.AppendRow(table.Row{r.ResourceType, r.ID, r.Name, r.IssueNumber, r.StartYear, volumeName})
	}
	t.Render()
	fmt.Println("Run `comic-search import <issue-id>` to import an issue.")
	return nil
}

func runImport(ctx context.Context, issueID int, overwrite bool) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	report, err := buildImporter(cfg).ImportIssue(ctx, issueID, overwrite)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %s (%s), %d creator notes", report.IssueNote, report.IssueOutcome, report.Creators)
	if len(report.Failures) > 0 {
		fmt.Printf(", %d failures", len(report.Failures))
	}
	fmt.Println()
	return nil
}
