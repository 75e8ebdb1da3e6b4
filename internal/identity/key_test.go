package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane doe"},
		{"jane   doe", "jane doe"},
		{"  JANE DOE  ", "jane doe"},
		{"jane\tdoe", "jane doe"},
		{"", ""},
		{"   ", ""},
		{"Ãlvaro", "ãlvaro"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "jane doe::2000-01-01", Key("Jane   Doe", "2000-01-01"))
	assert.Equal(t, "jane doe::", Key("Jane Doe", ""))
	assert.Equal(t, "::2000-01-01", Key("", "2000-01-01"))

	// Same person, different formatting, identical key.
	assert.Equal(t, Key("jane doe", "2000-01-01"), Key(" JANE  DOE ", "2000-01-01"))
	// Different birthday, different key.
	assert.NotEqual(t, Key("Jane Doe", "2000-01-01"), Key("Jane Doe", "2000-01-02"))
}
