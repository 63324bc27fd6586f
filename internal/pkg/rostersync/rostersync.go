package rostersync

import (
	"errors"
	"flag"
	"strings"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/test-infra/prow/github"

	"github.com/iambami/community/internal/pkg/codeowners"
	"github.com/iambami/community/internal/pkg/roster"
)

// ownersFileLocations are the locations GitHub honors for a CODEOWNERS file,
// in precedence order. Only the first location found in a repository is used.
var ownersFileLocations = []string{
	"CODEOWNERS",
	".github/CODEOWNERS",
	"docs/CODEOWNERS",
}

// Options holds options for one roster sync run.
type Options struct {
	Org          string
	RosterPath   string
	IgnoredRepos string
	IgnoredUsers string
	DryRun       bool
}

// AddFlags injects sync options into the given FlagSet.
func (o *Options) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Org, "org", "", "GitHub organization to scan for owners files.")
	fs.StringVar(&o.RosterPath, "roster-path", "", "Path to the maintainer roster file.")
	fs.StringVar(&o.IgnoredRepos, "ignored-repos", "", "Comma separated repositories to skip.")
	fs.StringVar(&o.IgnoredUsers, "ignored-users", "", "Comma separated users that never enter the roster.")
	fs.BoolVar(&o.DryRun, "dry-run", false, "Report the changes without rewriting the roster.")
}

// Validate validates the org and the roster path.
func (o *Options) Validate() error {
	if o.Org == "" {
		return errors.New("--org must be set")
	}
	if o.RosterPath == "" {
		return errors.New("--roster-path must be set")
	}
	return nil
}

// ParseIgnoreList parses a comma separated ignore list into a lower-cased
// set, trimming surrounding whitespace and dropping empty entries.
func ParseIgnoreList(raw string) sets.String {
	ignored := sets.NewString()
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		ignored.Insert(strings.ToLower(item))
	}
	return ignored
}

type githubClient interface {
	GetRepos(org string, isUser bool) ([]github.Repo, error)
	GetFile(org, repo, filepath, commit string) ([]byte, error)
}

// ListOwnershipDocuments fetches the owners file of every repository in the
// org, skipping ignored and archived repositories. Repositories without an
// owners file contribute nothing.
func ListOwnershipDocuments(log *logrus.Entry, ghc githubClient,
	org string, ignoredRepos sets.String) ([]codeowners.Document, error) {
	repos, err := ghc.GetRepos(org, false)
	if err != nil {
		return nil, err
	}

	var documents []codeowners.Document
	for _, repo := range repos {
		if ignoredRepos.Has(strings.ToLower(repo.Name)) {
			log.Debugf("Skipping ignored repository %s.", repo.FullName)
			continue
		}
		if repo.Archived {
			log.Debugf("Skipping archived repository %s.", repo.FullName)
			continue
		}

		for _, location := range ownersFileLocations {
			content, err := ghc.GetFile(org, repo.Name, location, "")
			if err != nil {
				if _, ok := err.(*github.FileNotFound); ok {
					continue
				}
				return nil, err
			}
			documents = append(documents, codeowners.Document{Repo: repo.Name, Content: string(content)})
			break
		}
	}
	return documents, nil
}

// Sync performs one reconciliation run: load the previous roster, collect
// the current maintainers from every owners file, reconcile, then rewrite
// the roster. The roster file is only touched after the whole pipeline
// succeeded, a failed run leaves it as it was.
func Sync(log *logrus.Entry, ghc githubClient, lookup roster.ProfileLookup, o *Options) error {
	previous, err := roster.LoadRoster(o.RosterPath)
	if err != nil {
		return err
	}

	documents, err := ListOwnershipDocuments(log, ghc, o.Org, ParseIgnoreList(o.IgnoredRepos))
	if err != nil {
		return err
	}
	log.Infof("Found %d owners file(s) in %s.", len(documents), o.Org)

	current := roster.Collect(log, documents, lookup, ParseIgnoreList(o.IgnoredUsers))
	records, summary := roster.Reconcile(log, previous, current)

	log.Infof("Reconciled the roster: %d maintainer(s), %d added, %d removed.",
		len(records), len(summary.Added), len(summary.Removed))
	if o.DryRun {
		log.Info("Dry run, the roster will not be rewritten.")
		return nil
	}
	return roster.SaveRoster(o.RosterPath, records)
}
