package roster

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// LoadRoster reads the persisted roster. A missing file is an empty roster
// so that a first run can bootstrap it.
func LoadRoster(path string) ([]Record, error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read the roster")
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal the roster")
	}
	return records, nil
}

// SaveRoster rewrites the persisted roster in record order.
func SaveRoster(path string, records []Record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "could not marshal the roster")
	}
	if err := ioutil.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "could not write the roster")
	}
	return nil
}
