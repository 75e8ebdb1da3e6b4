package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"john smith", "jon smith", 1},
		{"john smith", "john smyth", 1},
		{"john smith", "jane doe", 8},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "Distance(%q, %q)", tt.a, tt.b)
	}
}

func candidates(names ...string) []Candidate {
	out := make([]Candidate, len(names))
	for i, n := range names {
		out[i] = Candidate{Display: n, Normalized: n}
	}
	return out
}

func TestRank_ByDistanceThenName(t *testing.T) {
	got := Rank("john smith", candidates("jane doe", "john smyth", "jon smith"), 3)

	// jon smith and john smyth are both distance 1; alphabetical order of
	// the normalized form breaks the tie. jane doe trails far behind.
	assert.Equal(t, []string{"john smyth", "jon smith", "jane doe"}, got)
}

func TestRank_CapsResults(t *testing.T) {
	got := Rank("aaa", candidates("aaa", "aab", "aac", "aad"), 3)

	assert.Len(t, got, 3)
	assert.Equal(t, "aaa", got[0])
}

func TestRank_DistinctByNormalizedForm(t *testing.T) {
	got := Rank("john smith", []Candidate{
		{Display: "Jon Smith", Normalized: "jon smith"},
		{Display: "JON  SMITH", Normalized: "jon smith"},
		{Display: "Jane Doe", Normalized: "jane doe"},
	}, 3)

	assert.Equal(t, []string{"Jon Smith", "Jane Doe"}, got)
}

func TestRank_ReturnsDisplayNames(t *testing.T) {
	got := Rank("john smith", []Candidate{
		{Display: "John  SMYTH", Normalized: "john smyth"},
	}, 3)

	assert.Equal(t, []string{"John  SMYTH"}, got)
}

func TestRank_Empty(t *testing.T) {
	assert.Nil(t, Rank("john", nil, 3))
	assert.Nil(t, Rank("john", candidates("a"), 0))
}
