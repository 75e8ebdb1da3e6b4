// Package roster defines the internally tracked registrants that
// reconciliation runs check against an external signup file.
package roster

import "context"

// Record is one internally known registrant. Records are supplied wholesale
// per reconciliation run and never mutated by the engine.
type Record struct {
	ID         string `json:"id"`
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
	// Birthday is an ISO date, or "" when unknown. A record without a
	// birthday can never match.
	Birthday string `json:"birthday"`
}

// Source loads the roster for an event. The engine itself performs no I/O;
// callers fetch the roster once, up front.
type Source interface {
	GetRoster(ctx context.Context, eventID string) ([]Record, error)
}
