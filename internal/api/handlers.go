package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/eventkit/signup-reconciler/internal/columns"
	"github.com/eventkit/signup-reconciler/internal/dates"
	"github.com/eventkit/signup-reconciler/internal/delimited"
	"github.com/eventkit/signup-reconciler/internal/fetch"
	"github.com/eventkit/signup-reconciler/internal/reconcile"
	"github.com/eventkit/signup-reconciler/internal/roster"
)

// Fetcher downloads a remote signup file and returns its decoded text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	rosterSource roster.Source
	fetcher      Fetcher
	engine       *reconcile.Engine
	defaultMode  dates.Mode
	db           *sql.DB
}

// NewHandlers creates the handler set.
func NewHandlers(source roster.Source, fetcher Fetcher, engine *reconcile.Engine, defaultMode dates.Mode) *Handlers {
	return &Handlers{
		rosterSource: source,
		fetcher:      fetcher,
		engine:       engine,
		defaultMode:  defaultMode,
	}
}

// SetDB attaches the roster database so the health check can ping it.
func (h *Handlers) SetDB(db *sql.DB) {
	h.db = db
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// ColumnOverride lets the caller pin signup file columns instead of relying
// on header detection. Header names are matched exactly.
type ColumnOverride struct {
	NameColumn    string `json:"name_column"`
	SurnameColumn string `json:"surname_column"`
	DOBColumn     string `json:"dob_column"`
}

type previewRequest struct {
	URL     string          `json:"url"`
	Text    string          `json:"text"`
	DOBMode string          `json:"dob_mode"`
	Columns *ColumnOverride `json:"columns"`
}

type previewResponse struct {
	Headers   []string                `json:"headers"`
	TotalRows int                     `json:"total_rows"`
	Sample    []map[string]string     `json:"sample"`
	Columns   reconcile.ColumnMapping `json:"columns"`
	DOBMode   string                  `json:"dob_mode"`
}

type reconcileRequest struct {
	EventID string          `json:"event_id"`
	URL     string          `json:"url"`
	Text    string          `json:"text"`
	DOBMode string          `json:"dob_mode"`
	Columns *ColumnOverride `json:"columns"`
}

type reconcileResponse struct {
	EventID      string                  `json:"event_id"`
	DOBMode      string                  `json:"dob_mode"`
	Columns      reconcile.ColumnMapping `json:"columns"`
	RosterCount  int                     `json:"roster_count"`
	SignupCount  int                     `json:"signup_count"`
	MatchedCount int                     `json:"matched_count"`
	MissingCount int                     `json:"missing_count"`
	Matched      []reconcile.MatchResult `json:"matched"`
	Missing      []reconcile.MatchResult `json:"missing"`
}

// signupTable obtains the signup text (inline or fetched) and parses it.
// The boolean reports whether a response was already written.
func (h *Handlers) signupTable(w http.ResponseWriter, r *http.Request, url, text string) (*delimited.Table, bool) {
	if text == "" && url == "" {
		respondError(w, http.StatusBadRequest, "either url or text is required")
		return nil, true
	}
	if text == "" {
		fetched, err := h.fetcher.Fetch(r.Context(), url)
		if err != nil {
			var fetchErr *fetch.FetchError
			if errors.As(err, &fetchErr) {
				respondError(w, http.StatusBadGateway, fetchErr.Error())
			} else {
				log.Printf("[API] Fetch failed for %s: %v", url, err)
				respondError(w, http.StatusBadGateway, "failed to fetch signup file")
			}
			return nil, true
		}
		text = fetched
	}

	table := delimited.Parse(text)
	if len(table.Headers) == 0 || len(table.Rows) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "signup file contains no data rows")
		return nil, true
	}
	return table, false
}

// resolveMapping picks the signup file columns, honoring an explicit override
// before header detection.
func resolveMapping(table *delimited.Table, override *ColumnOverride) (reconcile.ColumnMapping, error) {
	m := reconcile.ColumnMapping{}
	if override != nil {
		m.NameColumn = override.NameColumn
		m.SurnameColumn = override.SurnameColumn
		m.DOBColumn = override.DOBColumn
	}
	if m.NameColumn == "" {
		m.NameColumn = columns.Detect(table.Headers, columns.NameCandidates)
	}
	if m.SurnameColumn == "" {
		m.SurnameColumn = columns.Detect(table.Headers, columns.SurnameCandidates)
	}
	if m.DOBColumn == "" {
		m.DOBColumn = columns.Detect(table.Headers, columns.DOBCandidates)
	}

	if m.NameColumn == "" {
		return m, errors.New("no name column found in signup file")
	}
	if m.DOBColumn == "" {
		return m, errors.New("no date of birth column found in signup file")
	}
	for _, col := range []string{m.NameColumn, m.SurnameColumn, m.DOBColumn} {
		if col != "" && !hasHeader(table.Headers, col) {
			return m, errors.New("unknown column " + strings.TrimSpace(col))
		}
	}
	return m, nil
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}

// dobMode resolves the requested mode string, falling back to the configured
// default when the field is omitted.
func (h *Handlers) dobMode(raw string) (dates.Mode, error) {
	if raw == "" {
		return h.defaultMode, nil
	}
	switch raw {
	case dates.Auto.String(), dates.DMY.String(), dates.MDY.String():
		return dates.ParseMode(raw), nil
	default:
		return dates.Auto, errors.New("unknown dob_mode " + raw)
	}
}

const previewSampleSize = 10

// PreviewSignups parses a signup file and reports its shape without touching
// the roster: headers, a row sample, the detected columns, and the DOB order
// that would be used.
//
//	POST /api/signups/preview
func (h *Handlers) PreviewSignups(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode, err := h.dobMode(req.DOBMode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, done := h.signupTable(w, r, req.URL, req.Text)
	if done {
		return
	}

	mapping, err := resolveMapping(table, req.Columns)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	_, resolved := reconcile.BuildExternalRecords(table, mapping, mode)

	sample := table.Rows
	if len(sample) > previewSampleSize {
		sample = sample[:previewSampleSize]
	}
	respondJSON(w, http.StatusOK, previewResponse{
		Headers:   table.Headers,
		TotalRows: len(table.Rows),
		Sample:    sample,
		Columns:   mapping,
		DOBMode:   resolved.String(),
	})
}

// ReconcileSignups runs a full reconciliation: load the event roster, parse
// the signup file, and report which registrants are missing from it.
//
//	POST /api/signups/reconcile
func (h *Handlers) ReconcileSignups(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EventID == "" {
		respondError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	mode, err := h.dobMode(req.DOBMode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, done := h.signupTable(w, r, req.URL, req.Text)
	if done {
		return
	}

	mapping, err := resolveMapping(table, req.Columns)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	rosterRecords, err := h.rosterSource.GetRoster(r.Context(), req.EventID)
	if err != nil {
		log.Printf("[API] Roster load failed for event %s: %v", req.EventID, err)
		respondError(w, http.StatusInternalServerError, "failed to load roster")
		return
	}

	externals, resolved := reconcile.BuildExternalRecords(table, mapping, mode)
	results := h.engine.Reconcile(rosterRecords, externals)

	matched := make([]reconcile.MatchResult, 0, len(results))
	missing := make([]reconcile.MatchResult, 0)
	for _, res := range results {
		if res.IsMatch {
			matched = append(matched, res)
		} else {
			missing = append(missing, res)
		}
	}

	log.Printf("[API] Reconciled event %s: %d roster, %d signups, %d missing (%s)",
		req.EventID, len(rosterRecords), len(externals), len(missing), time.Since(start).Round(time.Millisecond))

	respondJSON(w, http.StatusOK, reconcileResponse{
		EventID:      req.EventID,
		DOBMode:      resolved.String(),
		Columns:      mapping,
		RosterCount:  len(rosterRecords),
		SignupCount:  len(externals),
		MatchedCount: len(matched),
		MissingCount: len(missing),
		Matched:      matched,
		Missing:      missing,
	})
}

// Health check

// HealthCheck returns the health status of the API, including a roster
// database ping when one is attached.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "not_configured"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(pingCtx); err != nil {
			status = "degraded"
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now(),
	})
}
