package roster

import (
	"github.com/mroth/weightedrand"
	"github.com/pkg/errors"
)

// PickTriager picks a random maintainer to triage an incoming issue.
// Maintainers owning more repositories are proportionally more likely
// to be picked.
func PickTriager(records []Record) (string, error) {
	choices := make([]weightedrand.Choice, 0, len(records))
	for _, record := range records {
		weight := len(record.Repos())
		if weight == 0 {
			continue
		}
		choices = append(choices, weightedrand.NewChoice(record.Github(), uint(weight)))
	}
	if len(choices) == 0 {
		return "", errors.New("no maintainer owns any repository")
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return "", errors.Wrap(err, "could not build the triager chooser")
	}
	return chooser.Pick().(string), nil
}
