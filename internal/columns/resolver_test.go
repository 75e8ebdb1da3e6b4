package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		candidates []string
		want       string
	}{
		{
			name:       "exact match",
			headers:    []string{"Team", "Name", "DOB"},
			candidates: DOBCandidates,
			want:       "DOB",
		},
		{
			name:       "case and punctuation insensitive",
			headers:    []string{"Team", "Date_Of_Birth"},
			candidates: DOBCandidates,
			want:       "Date_Of_Birth",
		},
		{
			name:       "whitespace runs collapse",
			headers:    []string{"date  of   birth"},
			candidates: DOBCandidates,
			want:       "date  of   birth",
		},
		{
			name:       "first matching header wins",
			headers:    []string{"Birthday", "DOB"},
			candidates: DOBCandidates,
			want:       "Birthday",
		},
		{
			name:       "no match yields empty string",
			headers:    []string{"Team", "Shoe Size"},
			candidates: DOBCandidates,
			want:       "",
		},
		{
			name:       "surname variants",
			headers:    []string{"player", "Last-Name"},
			candidates: SurnameCandidates,
			want:       "Last-Name",
		},
		{
			name:       "name candidates skip surname",
			headers:    []string{"Surname", "First Name"},
			candidates: NameCandidates,
			want:       "First Name",
		},
		{
			name:       "empty headers",
			headers:    nil,
			candidates: NameCandidates,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.headers, tt.candidates))
		})
	}
}
