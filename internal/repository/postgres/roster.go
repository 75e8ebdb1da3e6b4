// Package postgres implements the roster source against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventkit/signup-reconciler/internal/roster"
)

// RosterRepo implements roster.Source against PostgreSQL.
type RosterRepo struct{ db *sql.DB }

// NewRosterRepo creates a Postgres-backed roster source.
func NewRosterRepo(db *sql.DB) *RosterRepo { return &RosterRepo{db: db} }

// GetRoster loads all registrants for an event, ordered by team then player
// so downstream output stays stable.
func (r *RosterRepo) GetRoster(ctx context.Context, eventID string) ([]roster.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_name, player_name, birthday
		FROM roster_entries
		WHERE event_id = $1
		ORDER BY team_name, player_name, id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var out []roster.Record
	for rows.Next() {
		var (
			rec      roster.Record
			birthday sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.TeamName, &rec.PlayerName, &birthday); err != nil {
			return nil, fmt.Errorf("scan roster entry: %w", err)
		}
		if birthday.Valid {
			rec.Birthday = birthday.Time.Format("2006-01-02")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster: %w", err)
	}
	return out, nil
}

// AddRecord inserts a registrant. A missing ID gets a fresh UUID. NULL is
// stored for an empty birthday.
func (r *RosterRepo) AddRecord(ctx context.Context, eventID string, rec roster.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	var birthday any
	if rec.Birthday != "" {
		birthday = rec.Birthday
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roster_entries (id, event_id, team_name, player_name, birthday, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, rec.ID, eventID, rec.TeamName, rec.PlayerName, birthday)
	if err != nil {
		return "", fmt.Errorf("insert roster entry: %w", err)
	}
	return rec.ID, nil
}
