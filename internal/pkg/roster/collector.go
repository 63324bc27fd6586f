package roster

import (
	"strings"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/iambami/community/internal/pkg/codeowners"
)

// ProfileLookup resolves a lower-cased login to its GitHub profile.
// A nil profile without an error means the account does not exist.
type ProfileLookup func(login string) (*Profile, error)

// Collect runs the owner extraction over every ownership document and builds
// the current maintainer set. Documents are processed strictly in order and
// the lookup is invoked at most once per unique lower-cased login, so a
// caching lookup never sees concurrent or repeated requests for one login
// within a run.
func Collect(log *logrus.Entry, documents []codeowners.Document,
	lookup ProfileLookup, ignoredUsers sets.String) *MaintainerSet {
	maintainers := NewMaintainerSet()
	// Lookup results for this run, including failed ones as nil.
	profiles := map[string]*Profile{}

	for _, document := range documents {
		owners, unsupported := codeowners.Extract(document.Content)
		for _, token := range unsupported {
			log.WithField("repo", document.Repo).
				Warnf("Owner %q is not supported, only GitHub usernames can be maintainers.", token)
		}

		for _, owner := range owners.List() {
			login := strings.ToLower(owner)
			if ignoredUsers.Has(login) {
				log.WithField("repo", document.Repo).Debugf("Ignoring owner %s.", owner)
				continue
			}

			profile, seen := profiles[login]
			if !seen {
				var err error
				profile, err = lookup(login)
				if err != nil {
					log.WithField("owner", owner).WithError(err).Warn("Failed to look up the profile.")
				} else if profile == nil {
					log.WithField("repo", document.Repo).
						Warnf("Owner %s has no GitHub account, the account may have been deleted or renamed.", owner)
				}
				profiles[login] = profile
			}
			if profile == nil {
				continue
			}

			maintainer := maintainers.Ensure(profile)
			if !sets.NewString(maintainer.Repos...).Has(document.Repo) {
				maintainer.Repos = append(maintainer.Repos, document.Repo)
			}
		}
	}

	return maintainers
}
