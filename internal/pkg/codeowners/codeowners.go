package codeowners

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Triager annotation markers recognized inside owners file comments.
// When a comment carries more than one marker the textually first one wins.
var triagerMarkers = []string{"docTriagers:", "codeTriagers:"}

// Document is the raw content of one ownership declaration file
// from one repository.
type Document struct {
	Repo    string
	Content string
}

// Extract parses CODEOWNERS-style content into the set of owner logins it
// declares. The first field of each line is a path pattern and is ignored;
// the remaining fields are accepted when they are plain @-prefixed usernames.
// Team handles and email addresses are not supported and come back in the
// second return value so the caller can report them.
func Extract(content string) (sets.String, []string) {
	owners := sets.NewString()
	var unsupported []string

	for _, line := range strings.Split(content, "\n") {
		declaration := line
		var comment string
		if idx := strings.Index(line, "#"); idx != -1 {
			declaration = line[:idx]
			comment = line[idx+1:]
		}

		for _, token := range triagersFromComment(comment) {
			owners.Insert(strings.TrimPrefix(token, "@"))
		}

		fields := strings.Fields(declaration)
		if len(fields) == 0 {
			continue
		}
		for _, candidate := range fields[1:] {
			if !strings.HasPrefix(candidate, "@") || strings.Contains(candidate, "/") {
				unsupported = append(unsupported, candidate)
				continue
			}
			owners.Insert(strings.TrimPrefix(candidate, "@"))
		}
	}

	return owners, unsupported
}

// triagersFromComment returns the tokens after the first triager marker
// found in the comment.
func triagersFromComment(comment string) []string {
	marker := -1
	rest := ""
	for _, m := range triagerMarkers {
		idx := strings.Index(comment, m)
		if idx == -1 {
			continue
		}
		if marker == -1 || idx < marker {
			marker = idx
			rest = comment[idx+len(m):]
		}
	}
	if marker == -1 {
		return nil
	}
	return strings.Fields(rest)
}
