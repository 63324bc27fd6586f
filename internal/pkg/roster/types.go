package roster

import (
	"strings"
)

// Roster record fields this package interprets. Everything else found in a
// persisted record is opaque pass-through data owned by the roster file.
const (
	// GithubField specifies the display-case GitHub login of a record.
	GithubField = "github"
	// GithubIDField specifies the stable numeric GitHub account ID.
	GithubIDField = "githubID"
	// ReposField specifies the repositories a maintainer currently owns.
	ReposField = "repos"
)

// Profile is the validated GitHub account behind an owner login.
type Profile struct {
	GithubName string `json:"github"`
	GithubID   string `json:"githubID"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Company    string `json:"company,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Maintainer is a current maintainer discovered during one collection pass.
type Maintainer struct {
	Profile
	Repos []string `json:"repos"`
}

// Record is one persisted roster entry.
type Record map[string]interface{}

// Github returns the record's GitHub login.
func (r Record) Github() string {
	login, _ := r[GithubField].(string)
	return login
}

// Repos returns the record's repository list. Records loaded from YAML carry
// it as []interface{}, freshly reconciled records as []string.
func (r Record) Repos() []string {
	switch repos := r[ReposField].(type) {
	case []string:
		return repos
	case []interface{}:
		names := make([]string, 0, len(repos))
		for _, repo := range repos {
			if name, ok := repo.(string); ok {
				names = append(names, name)
			}
		}
		return names
	}
	return nil
}

// Record converts a maintainer into a fresh roster record.
func (m *Maintainer) Record() Record {
	record := Record{
		GithubField:   m.GithubName,
		GithubIDField: m.GithubID,
		ReposField:    m.Repos,
	}
	if m.Name != "" {
		record["name"] = m.Name
	}
	if m.Email != "" {
		record["email"] = m.Email
	}
	if m.Company != "" {
		record["company"] = m.Company
	}
	if m.Location != "" {
		record["location"] = m.Location
	}
	return record
}

// MaintainerSet is the result of one collection pass, keyed by the
// lower-cased login. Insertion order is tracked explicitly so that newly
// discovered maintainers keep their discovery order; Go map iteration
// order is never relied on.
type MaintainerSet struct {
	byLogin map[string]*Maintainer
	order   []string
}

// NewMaintainerSet creates an empty maintainer set.
func NewMaintainerSet() *MaintainerSet {
	return &MaintainerSet{byLogin: map[string]*Maintainer{}}
}

// Get returns the maintainer for a login, matched case-insensitively.
func (s *MaintainerSet) Get(login string) (*Maintainer, bool) {
	maintainer, ok := s.byLogin[strings.ToLower(login)]
	return maintainer, ok
}

// Ensure returns the maintainer entry for the profile's login,
// creating it on first sight.
func (s *MaintainerSet) Ensure(profile *Profile) *Maintainer {
	key := strings.ToLower(profile.GithubName)
	if maintainer, ok := s.byLogin[key]; ok {
		return maintainer
	}
	maintainer := &Maintainer{Profile: *profile}
	s.byLogin[key] = maintainer
	s.order = append(s.order, key)
	return maintainer
}

// Logins returns the lower-cased logins in discovery order.
func (s *MaintainerSet) Logins() []string {
	return s.order
}

// Len returns the number of maintainers in the set.
func (s *MaintainerSet) Len() int {
	return len(s.byLogin)
}
