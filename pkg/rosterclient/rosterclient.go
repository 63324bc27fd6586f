package rosterclient

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
)

const (
	// RosterURLFmt specifies a format for the roster URL.
	RosterURLFmt = "%s/roster"
	// TriagerURLFmt specifies a format for the random triager URL.
	TriagerURLFmt = "%s/roster/triager"
)

// Maintainer is one roster record. Only github, githubID and repos are
// guaranteed, anything else is extra data carried by the roster file.
type Maintainer map[string]interface{}

// RosterResponse specifies the response to the request to get the roster.
type RosterResponse struct {
	Data    []Maintainer `json:"data"`
	Message string       `json:"message"`
}

// TriagerResponse specifies the response to the request to pick a triager.
type TriagerResponse struct {
	Data    string `json:"data"`
	Message string `json:"message"`
}

// RosterLoader loads the maintainer roster.
type RosterLoader interface {
	LoadRoster(rosterURL string) ([]Maintainer, error)
}

// RosterClient for load the maintainer roster.
type RosterClient struct {
	// Client is a HTTP client to request the roster.
	Client *http.Client
}

// LoadRoster returns the maintainers from the URL of a roster viewer.
func (rc *RosterClient) LoadRoster(rosterURL string) ([]Maintainer, error) {
	res, err := rc.Client.Get(rosterURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != 200 {
		return nil, errors.New("could not get the roster")
	}

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var rosterRes RosterResponse
	if err := json.Unmarshal(body, &rosterRes); err != nil {
		return nil, err
	}
	return rosterRes.Data, nil
}
