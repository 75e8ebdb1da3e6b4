package reconcile

// Reason explains why a roster record could not be matched against the
// signup file. Unmatched records always carry the most specific reason
// available; nothing in a reconciliation run is reported as an error.
type Reason string

const (
	// ReasonDOBMissing marks roster records whose own birthday is absent or
	// unparseable. Without a birthday no identity key can be formed.
	ReasonDOBMissing Reason = "DOB_MISSING"
	// ReasonNameMismatchSameDOB marks records whose birthday appears in the
	// signup file under one or more different names.
	ReasonNameMismatchSameDOB Reason = "NAME_MISMATCH_SAME_DOB"
	// ReasonDOBNotFound marks records whose birthday appears nowhere in the
	// signup file.
	ReasonDOBNotFound Reason = "DOB_NOT_FOUND"
)

// ColumnMapping names the signup-file columns holding the given name,
// surname, and date of birth. It is supplied by the caller, usually from
// auto-detected candidates the operator can override.
type ColumnMapping struct {
	NameColumn    string `json:"name_column"`
	SurnameColumn string `json:"surname_column"`
	DOBColumn     string `json:"dob_column"`
}

// ExternalRecord is one signup-file row reduced to name and birthday form.
type ExternalRecord struct {
	RawName  string `json:"raw_name"`
	Birthday string `json:"birthday"` // ISO date or ""
	Key      string `json:"key"`
}

// MatchResult is the per-roster-record outcome of a reconciliation run.
type MatchResult struct {
	RosterID   string `json:"roster_id"`
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
	IsMatch    bool   `json:"is_match"`
	// Reason is set only when IsMatch is false.
	Reason Reason `json:"reason,omitempty"`
	// Suggestions lists the closest same-birthday signup names, best first.
	// Set only for NAME_MISMATCH_SAME_DOB.
	Suggestions []string `json:"suggestions,omitempty"`
}
