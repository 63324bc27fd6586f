package roster

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// pullDuration is a duration for pull roster from file.
var pullDuration = 1 * time.Minute

// Agent serves the persisted roster to long-running processes and keeps it
// fresh while the sync job rewrites the file underneath.
type Agent struct {
	mut     sync.Mutex
	records []Record
}

// Load attempts to load the roster from the path. It returns an error if
// the file can't be read or parsed.
func (a *Agent) Load(path string) error {
	records, err := LoadRoster(path)
	if err != nil {
		return err
	}
	a.Set(records)
	return nil
}

// Set sets the roster records.
func (a *Agent) Set(records []Record) {
	a.mut.Lock()
	defer a.mut.Unlock()
	a.records = records
}

// Start starts polling path for the roster. If the first attempt fails,
// then start returns the error. Future errors will halt updates but not stop.
func (a *Agent) Start(path string) error {
	if err := a.Load(path); err != nil {
		return err
	}
	// nolint:staticcheck
	ticker := time.Tick(pullDuration)
	go func() {
		for range ticker {
			if err := a.Load(path); err != nil {
				logrus.WithField("path", path).WithError(err).Error("Error loading roster.")
			}
		}
	}()
	return nil
}

// Roster returns the agent's current roster records.
func (a *Agent) Roster() []Record {
	a.mut.Lock()
	defer a.mut.Unlock()
	return a.records
}
