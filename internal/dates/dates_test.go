package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToISO(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		mode Mode
		want string
	}{
		{"already iso", "2024-03-05", DMY, "2024-03-05"},
		{"iso single digits padded", "2024-3-5", DMY, "2024-03-05"},
		{"iso invalid month", "2024-13-05", DMY, ""},
		{"iso impossible day", "2024-04-31", DMY, ""},
		{"iso leap day valid", "2024-2-29", DMY, "2024-02-29"},
		{"iso leap day invalid", "2023-02-29", DMY, ""},
		{"day over 12 forces day first", "31/01/2024", MDY, "2024-01-31"},
		{"month over 12 forces month first", "01/31/2024", DMY, "2024-01-31"},
		{"ambiguous dmy", "02/03/2024", DMY, "2024-03-02"},
		{"ambiguous mdy", "02/03/2024", MDY, "2024-02-03"},
		{"both over 12 invalid", "13/13/2024", DMY, ""},
		{"dot separator", "05.04.1999", DMY, "1999-04-05"},
		{"dash separator", "5-4-1999", DMY, "1999-04-05"},
		{"mixed separators rejected", "05/04.1999", DMY, ""},
		{"textual month", "4 March 1998", DMY, "1998-03-04"},
		{"textual month us", "March 4, 1998", DMY, "1998-03-04"},
		{"garbage", "not a date", DMY, ""},
		{"empty", "", DMY, ""},
		{"whitespace only", "   ", DMY, ""},
		{"auto treated as day first", "02/03/2024", Auto, "2024-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToISO(tt.raw, tt.mode))
		})
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   Mode
	}{
		{
			name:   "day first evidence",
			values: []string{"31/01/2024", "02/03/2001", "15/06/1999"},
			want:   DMY,
		},
		{
			name:   "month first evidence",
			values: []string{"01/31/2024", "06/15/1999", "02/03/2001"},
			want:   MDY,
		},
		{
			name:   "majority wins",
			values: []string{"01/31/2024", "15/06/1999", "22/07/2000"},
			want:   DMY,
		},
		{
			name:   "tie defaults day first",
			values: []string{"01/31/2024", "15/06/1999"},
			want:   DMY,
		},
		{
			name:   "all ambiguous defaults day first",
			values: []string{"02/03/2024", "05/06/2001"},
			want:   DMY,
		},
		{
			name:   "no parseable values defaults day first",
			values: []string{"", "soon", "2024-01-01"},
			want:   DMY,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.values))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, MDY, Resolve(MDY, []string{"31/01/2024"}))
	assert.Equal(t, DMY, Resolve(DMY, []string{"01/31/2024"}))
	assert.Equal(t, MDY, Resolve(Auto, []string{"01/31/2024"}))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, DMY, ParseMode("dmy"))
	assert.Equal(t, MDY, ParseMode(" MDY "))
	assert.Equal(t, Auto, ParseMode("auto"))
	assert.Equal(t, Auto, ParseMode(""))
	assert.Equal(t, Auto, ParseMode("ymd"))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "dmy", DMY.String())
	assert.Equal(t, "mdy", MDY.String())
	assert.Equal(t, "auto", Auto.String())
}
