// Package identity builds the comparison keys used for exact matching
// between roster records and signup-file rows.
package identity

import "strings"

// KeySeparator joins the normalized name and the ISO birthday. It cannot
// occur in a normalized name, so keys are unambiguous.
const KeySeparator = "::"

// NormalizeName lowercases, collapses internal whitespace runs to a single
// space, and trims. "Jane   DOE " and "jane doe" normalize identically.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Key builds the identity key for a (name, ISO birthday) pair. The result is
// syntactically valid even for empty parts; callers must not insert keys
// with an empty birthday into lookup sets, since every DOB-less record would
// collide with every other.
func Key(name, isoDOB string) string {
	return NormalizeName(name) + KeySeparator + isoDOB
}
