package roster

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/assert"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/iambami/community/internal/pkg/codeowners"
)

// fakeLookup resolves every login except the ones listed as missing,
// recording how often each login was requested.
type fakeLookup struct {
	missing   sets.String
	failing   sets.String
	callCount map[string]int
}

func newFakeLookup(missing, failing []string) *fakeLookup {
	return &fakeLookup{
		missing:   sets.NewString(missing...),
		failing:   sets.NewString(failing...),
		callCount: map[string]int{},
	}
}

func (f *fakeLookup) lookup(login string) (*Profile, error) {
	f.callCount[login]++
	if f.failing.Has(login) {
		return nil, fmt.Errorf("the GitHub API is unhappy about %s", login)
	}
	if f.missing.Has(login) {
		return nil, nil
	}
	return &Profile{
		GithubName: login,
		GithubID:   fmt.Sprintf("%d", len(login)),
	}, nil
}

func TestCollect(t *testing.T) {
	tests := []struct {
		name          string
		documents     []codeowners.Document
		missing       []string
		failing       []string
		ignoredUsers  []string
		exceptLogins  []string
		exceptRepos   map[string][]string
		exceptLookups map[string]int
	}{
		{
			name: "single document",
			documents: []codeowners.Document{
				{Repo: "website", Content: "* @alice @bob"},
			},
			exceptLogins:  []string{"alice", "bob"},
			exceptRepos:   map[string][]string{"alice": {"website"}, "bob": {"website"}},
			exceptLookups: map[string]int{"alice": 1, "bob": 1},
		},
		{
			name: "case insensitive merge across repos",
			documents: []codeowners.Document{
				{Repo: "website", Content: "* @Alice"},
				{Repo: "cli", Content: "* @alice"},
			},
			exceptLogins:  []string{"alice"},
			exceptRepos:   map[string][]string{"alice": {"website", "cli"}},
			exceptLookups: map[string]int{"alice": 1},
		},
		{
			name: "lookup happens once per login",
			documents: []codeowners.Document{
				{Repo: "website", Content: "* @alice"},
				{Repo: "cli", Content: "* @alice"},
				{Repo: "docs", Content: "* @ALICE"},
			},
			exceptLogins:  []string{"alice"},
			exceptRepos:   map[string][]string{"alice": {"website", "cli", "docs"}},
			exceptLookups: map[string]int{"alice": 1},
		},
		{
			name: "missing profile contributes nothing",
			documents: []codeowners.Document{
				{Repo: "website", Content: "* @alice @ghost"},
				{Repo: "cli", Content: "* @ghost"},
			},
			missing:       []string{"ghost"},
			exceptLogins:  []string{"alice"},
			exceptRepos:   map[string][]string{"alice": {"website"}},
			exceptLookups: map[string]int{"alice": 1, "ghost": 1},
		},
		{
			name: "failed lookup contributes nothing",
			documents: []codeowners.Document{
				{Repo: "website", Content: "* @alice @flaky"},
			},
			failing:       []string{"flaky"},
			exceptLogins:  []string{"alice"},
			exceptRepos:   map[string][]string{"alice": {"website"}},
			exceptLookups: map[string]int{"alice": 1, "flaky": 1},
		},
		{
			name: "ignored users are never looked up",
			documents: []codeowners.Document{
				{Repo: "website", Content: "* @alice @some-bot"},
				{Repo: "cli", Content: "* @Some-Bot"},
			},
			ignoredUsers:  []string{"some-bot"},
			exceptLogins:  []string{"alice"},
			exceptRepos:   map[string][]string{"alice": {"website"}},
			exceptLookups: map[string]int{"alice": 1},
		},
		{
			name: "triager annotations count as owners",
			documents: []codeowners.Document{
				{Repo: "docs", Content: "# docTriagers: carol"},
			},
			exceptLogins:  []string{"carol"},
			exceptRepos:   map[string][]string{"carol": {"docs"}},
			exceptLookups: map[string]int{"carol": 1},
		},
		{
			name: "duplicate repo appends are suppressed",
			documents: []codeowners.Document{
				{Repo: "website", Content: "* @alice"},
				{Repo: "website", Content: "*.md @alice"},
			},
			exceptLogins:  []string{"alice"},
			exceptRepos:   map[string][]string{"alice": {"website"}},
			exceptLookups: map[string]int{"alice": 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log := logrus.WithField("component", "collector-testing")
			lookup := newFakeLookup(tc.missing, tc.failing)

			maintainers := Collect(log, tc.documents, lookup.lookup, sets.NewString(tc.ignoredUsers...))

			assert.DeepEqual(t, maintainers.Logins(), tc.exceptLogins)
			for login, repos := range tc.exceptRepos {
				maintainer, ok := maintainers.Get(login)
				if !ok {
					t.Fatalf("expected maintainer %s in the current set", login)
				}
				assert.DeepEqual(t, maintainer.Repos, repos)
			}
			assert.DeepEqual(t, lookup.callCount, tc.exceptLookups)
		})
	}
}

func TestCollectNormalizesLookupLogin(t *testing.T) {
	log := logrus.WithField("component", "collector-testing")
	lookup := newFakeLookup(nil, nil)
	documents := []codeowners.Document{
		{Repo: "website", Content: "* @MixedCase"},
	}

	Collect(log, documents, lookup.lookup, sets.NewString())

	for login := range lookup.callCount {
		if login != strings.ToLower(login) {
			t.Errorf("expected a normalized login, but got %q", login)
		}
	}
}
