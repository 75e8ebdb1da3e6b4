// Package delimited turns loosely structured delimited text (partner signup
// exports, usually CSV or semicolon-separated) into a header row plus ordered
// records. It has no knowledge of column semantics and never fails on
// malformed input: it degrades to whatever table it can recover.
package delimited

import (
	"fmt"
	"strings"
)

// Table is the parsed form of a delimited text file. Every row holds exactly
// one value per header; missing cells are empty strings, never absent.
type Table struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// Parse converts raw text into a Table. Only `,` and `;` are supported as
// delimiters: the text is parsed with `,` first, and re-parsed with `;` when
// the comma parse collapses the first row into a single field and the text
// contains semicolons. Whichever parse yields strictly more data rows wins,
// with `,` as the tiebreaker.
func Parse(rawText string) *Table {
	rawText = strings.TrimPrefix(rawText, "\uFEFF")
	rawText = strings.ReplaceAll(rawText, "\r", "")

	rows := tokenize(rawText, ',')
	if len(rows) > 0 && len(rows[0]) <= 1 && strings.Contains(rawText, ";") {
		alt := tokenize(rawText, ';')
		if dataRowCount(alt) > dataRowCount(rows) {
			rows = alt
		}
	}

	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return &Table{Headers: []string{}, Rows: []map[string]string{}}
	}

	headers := uniqueHeaders(rows[0])
	table := &Table{Headers: headers, Rows: make([]map[string]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			} else {
				record[h] = ""
			}
		}
		table.Rows = append(table.Rows, record)
	}
	return table
}

// tokenize splits text into rows of fields honoring double-quoted fields.
// Inside quotes a doubled quote is an escaped literal quote and a lone quote
// closes the field; the delimiter and newlines are taken literally. Row
// boundaries are unquoted newlines.
func tokenize(text string, delim rune) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delim && !inQuotes:
			row = append(row, field.String())
			field.Reset()
		case c == '\n' && !inQuotes:
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
		default:
			field.WriteRune(c)
		}
	}
	row = append(row, field.String())
	rows = append(rows, row)
	return rows
}

// dataRowCount counts non-blank rows beyond the first that actually split
// into multiple fields. Rows the delimiter failed to split carry no data, so
// this is what decides which delimiter explains more of the input.
func dataRowCount(rows [][]string) int {
	n := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 1 && !isBlankRow(row) {
			n++
		}
	}
	return n
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func dropBlankRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		if !isBlankRow(row) {
			kept = append(kept, row)
		}
	}
	return kept
}

// uniqueHeaders trims header cells and enforces the Table invariant that
// headers are unique and non-empty: empty cells become column_<n> (1-based)
// and collisions get a _2, _3, ... suffix.
func uniqueHeaders(raw []string) []string {
	headers := make([]string, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, cell := range raw {
		h := strings.TrimSpace(cell)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		seen[h]++
		if seen[h] > 1 {
			h = fmt.Sprintf("%s_%d", h, seen[h])
		}
		headers = append(headers, h)
	}
	return headers
}

// Serialize renders a Table back to comma-delimited text. Fields containing
// the delimiter, quotes, or newlines are quoted with doubled inner quotes.
// Parse(Serialize(t)) reproduces t for tables whose cells carry none of
// those characters.
func Serialize(t *Table) string {
	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(cell))
		}
		b.WriteByte('\n')
	}

	writeRow(t.Headers)
	for _, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			cells[i] = row[h]
		}
		writeRow(cells)
	}
	return b.String()
}

func escapeField(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
