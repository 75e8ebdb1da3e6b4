// Package columns maps ambiguous signup-file header labels to the canonical
// roles the reconciliation engine needs: given name, surname, and date of
// birth. Detection is a suggestion only; operators can override the mapping.
package columns

import (
	"regexp"
	"strings"
)

// Default candidate labels per role. These are compared against headers in
// normalized form, so "Date of Birth", "date_of_birth" and "DATE-OF-BIRTH"
// all hit the same entry.
var (
	NameCandidates    = []string{"name", "first name", "firstname", "given name", "player", "player name", "vorname"}
	SurnameCandidates = []string{"surname", "last name", "lastname", "family name", "nachname"}
	DOBCandidates     = []string{"dob", "date of birth", "birthday", "birthdate", "birth date", "born", "geburtsdatum"}
)

var nonAlnumRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Detect returns the first header whose normalized form equals any
// candidate's normalized form, or "" when none matches. Callers fall back to
// a positional default and allow manual override.
func Detect(headers, candidates []string) string {
	want := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		want[normalize(c)] = struct{}{}
	}
	for _, h := range headers {
		if _, ok := want[normalize(h)]; ok {
			return h
		}
	}
	return ""
}

// normalize lowercases and collapses every run of non-alphanumeric
// characters to a single space, then trims.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
