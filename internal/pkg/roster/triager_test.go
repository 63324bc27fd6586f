package roster

import (
	"testing"
)

func TestPickTriager(t *testing.T) {
	records := []Record{
		{GithubField: "alice", ReposField: []string{"website", "cli", "docs"}},
		{GithubField: "bob", ReposField: []string{"cli"}},
		{GithubField: "retired", ReposField: []string{}},
	}

	picked := map[string]bool{}
	for i := 0; i < 100; i++ {
		triager, err := PickTriager(records)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		picked[triager] = true
	}

	for triager := range picked {
		if triager != "alice" && triager != "bob" {
			t.Errorf("expected a maintainer with repositories, but got %q", triager)
		}
	}
	if picked["retired"] {
		t.Error("expected maintainers without repositories to never be picked")
	}
}

func TestPickTriagerEmptyRoster(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
	}{
		{
			name: "no records",
		},
		{
			name: "no record owns anything",
			records: []Record{
				{GithubField: "retired", ReposField: []string{}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := PickTriager(tc.records); err == nil {
				t.Error("expected an error, but got none")
			}
		})
	}
}
