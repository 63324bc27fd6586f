package roster

import (
	"strings"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

// ChangeSummary reports the membership changes of one reconciliation.
type ChangeSummary struct {
	Added   []string
	Removed []string
}

// Reconcile merges the previous roster with the current maintainer set.
//
// Previous records keep their original order and their pass-through fields;
// only repos and githubID are overwritten from the current entry. Records
// whose login no longer owns anything are dropped. Maintainers not present
// in the previous roster are appended in discovery order. The current set is
// never mutated; consumed logins are tracked in a separate set.
func Reconcile(log *logrus.Entry, previous []Record, current *MaintainerSet) ([]Record, *ChangeSummary) {
	reconciled := make([]Record, 0, current.Len())
	summary := &ChangeSummary{}
	consumed := sets.NewString()

	for _, record := range previous {
		login := record.Github()
		maintainer, ok := current.Get(login)
		if !ok {
			log.Infof("%s no longer owns any repository, removing from the roster.", login)
			summary.Removed = append(summary.Removed, login)
			continue
		}

		updated := Record{}
		for field, value := range record {
			updated[field] = value
		}
		updated[ReposField] = maintainer.Repos
		updated[GithubIDField] = maintainer.GithubID

		reconciled = append(reconciled, updated)
		consumed.Insert(strings.ToLower(login))
	}

	for _, login := range current.Logins() {
		if consumed.Has(login) {
			continue
		}
		maintainer, _ := current.Get(login)
		log.Infof("%s is a new maintainer, welcome!", maintainer.GithubName)
		summary.Added = append(summary.Added, maintainer.GithubName)
		reconciled = append(reconciled, maintainer.Record())
	}

	return reconciled, summary
}
