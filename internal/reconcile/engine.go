// Package reconcile determines which internally tracked registrants are
// missing from an externally supplied signup file. Exact matching happens on
// identity keys (normalized name + ISO birthday); near-misses sharing a
// birthday get ranked name suggestions instead of a silent "missing".
package reconcile

import (
	"sort"
	"strings"

	"github.com/eventkit/signup-reconciler/internal/dates"
	"github.com/eventkit/signup-reconciler/internal/delimited"
	"github.com/eventkit/signup-reconciler/internal/identity"
	"github.com/eventkit/signup-reconciler/internal/match"
	"github.com/eventkit/signup-reconciler/internal/roster"
)

// Config holds engine tuning knobs.
type Config struct {
	// MaxSuggestions caps the near-miss names attached to an unmatched
	// record. Zero means the default of 3.
	MaxSuggestions int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{MaxSuggestions: 3}
}

// Engine classifies roster records against a set of external signup records.
// It holds no state between runs: every call rebuilds its lookup structures
// from the inputs, so repeated calls never interfere.
type Engine struct {
	cfg Config
}

// NewEngine creates a reconciliation engine.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultConfig().MaxSuggestions
	}
	return &Engine{cfg: cfg}
}

// BuildExternalRecords reduces a parsed signup table to external records
// using the given column mapping and DOB mode. Auto mode is resolved once,
// from the evidence in the DOB column, and the resolved mode is returned for
// display. Rows that yield neither a name nor a birthday still produce a
// record; the index build decides what is usable.
func BuildExternalRecords(t *delimited.Table, m ColumnMapping, mode dates.Mode) ([]ExternalRecord, dates.Mode) {
	dobValues := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		dobValues = append(dobValues, row[m.DOBColumn])
	}
	resolved := dates.Resolve(mode, dobValues)

	records := make([]ExternalRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rawName := joinName(row[m.NameColumn], row[m.SurnameColumn], m.NameColumn == m.SurnameColumn)
		iso := dates.ToISO(row[m.DOBColumn], resolved)
		records = append(records, ExternalRecord{
			RawName:  rawName,
			Birthday: iso,
			Key:      identity.Key(rawName, iso),
		})
	}
	return records, resolved
}

func joinName(name, surname string, sameColumn bool) string {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if sameColumn || surname == "" {
		return name
	}
	if name == "" {
		return surname
	}
	return name + " " + surname
}

// index is the derived lookup structure for one run: a flat key set for
// exact matching and a birthday multimap for suggestion lookups. Keys with
// an empty name or birthday are never inserted; an empty-birthday key would
// make every DOB-less record match every other.
type index struct {
	keys  map[string]struct{}
	byDOB map[string][]ExternalRecord
}

func buildIndex(externals []ExternalRecord) *index {
	idx := &index{
		keys:  make(map[string]struct{}, len(externals)),
		byDOB: make(map[string][]ExternalRecord, len(externals)),
	}
	for _, rec := range externals {
		if rec.Birthday == "" {
			continue
		}
		idx.byDOB[rec.Birthday] = append(idx.byDOB[rec.Birthday], rec)
		if identity.NormalizeName(rec.RawName) != "" {
			idx.keys[rec.Key] = struct{}{}
		}
	}
	return idx
}

// Reconcile classifies every roster record as matched or missing and attaches
// ranked near-miss suggestions to missing records that share a birthday with
// at least one signup row. Output is sorted by team name, then player name,
// then roster ID, so unchanged inputs always reproduce the same result.
func (e *Engine) Reconcile(records []roster.Record, externals []ExternalRecord) []MatchResult {
	idx := buildIndex(externals)

	results := make([]MatchResult, 0, len(records))
	for _, r := range records {
		results = append(results, e.classify(r, idx))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TeamName != results[j].TeamName {
			return results[i].TeamName < results[j].TeamName
		}
		if results[i].PlayerName != results[j].PlayerName {
			return results[i].PlayerName < results[j].PlayerName
		}
		return results[i].RosterID < results[j].RosterID
	})
	return results
}

func (e *Engine) classify(r roster.Record, idx *index) MatchResult {
	result := MatchResult{
		RosterID:   r.ID,
		TeamName:   r.TeamName,
		PlayerName: r.PlayerName,
	}

	// Roster birthdays are already stored in a parseable form; the same
	// normalizer is reused for symmetry with the external side.
	isoDOB := dates.ToISO(r.Birthday, dates.DMY)
	namePart := identity.NormalizeName(r.PlayerName)

	if isoDOB == "" {
		result.Reason = ReasonDOBMissing
		return result
	}

	if _, ok := idx.keys[namePart+identity.KeySeparator+isoDOB]; ok {
		result.IsMatch = true
		return result
	}

	candidates := idx.byDOB[isoDOB]
	if len(candidates) == 0 {
		result.Reason = ReasonDOBNotFound
		return result
	}

	ranked := make([]match.Candidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, match.Candidate{
			Display:    c.RawName,
			Normalized: identity.NormalizeName(c.RawName),
		})
	}
	result.Reason = ReasonNameMismatchSameDOB
	result.Suggestions = match.Rank(namePart, ranked, e.cfg.MaxSuggestions)
	return result
}
