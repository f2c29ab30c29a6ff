package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"assetpack/internal/manifest"
)

// Status is the outcome of one build run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Run is one ledger row.
type Run struct {
	ID         int64              `json:"id"`
	RunID      string             `json:"run_id"`
	Pipeline   string             `json:"pipeline"`
	Dir        string             `json:"dir"`
	Status     Status             `json:"status"`
	Records    int                `json:"records"`
	Manifests  []manifest.Summary `json:"manifests,omitempty"`
	Message    string             `json:"message,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Record inserts run and returns its row id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	manifests, err := json.Marshal(run.Manifests)
	if err != nil {
		return 0, fmt.Errorf("marshal manifests: %w", err)
	}

	var id int64
	err = retryOnBusy(ctx, func() error {
		res, execErr := s.db.ExecContext(
			ctx,
			`INSERT INTO build_runs (
                run_id, pipeline, asset_dir, status, records,
                manifests_json, message, started_at, finished_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID,
			run.Pipeline,
			run.Dir,
			string(run.Status),
			run.Records,
			string(manifests),
			nullableString(run.Message),
			run.StartedAt.UTC().Format(time.RFC3339Nano),
			run.FinishedAt.UTC().Format(time.RFC3339Nano),
		)
		if execErr != nil {
			return execErr
		}
		id, execErr = res.LastInsertId()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("insert build run: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query build runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate build runs: %w", err)
	}
	return runs, nil
}

// LastSucceeded returns the newest succeeded run of pipeline in dir.
// The boolean is false when there is none.
func (s *Store) LastSucceeded(ctx context.Context, pipeline, dir string) (Run, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		selectRuns+` WHERE pipeline = ? AND asset_dir = ? AND status = ? ORDER BY id DESC LIMIT 1`,
		pipeline, dir, string(StatusSucceeded),
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	return run, true, nil
}

const selectRuns = `SELECT id, run_id, pipeline, asset_dir, status, records,
    manifests_json, message, started_at, finished_at FROM build_runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		status    string
		manifests sql.NullString
		message   sql.NullString
		started   string
		finished  string
	)
	if err := sc.Scan(&run.ID, &run.RunID, &run.Pipeline, &run.Dir, &status, &run.Records,
		&manifests, &message, &started, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan build run: %w", err)
	}
	run.Status = Status(status)
	run.Message = message.String
	if manifests.Valid && manifests.String != "" && manifests.String != "null" {
		if err := json.Unmarshal([]byte(manifests.String), &run.Manifests); err != nil {
			return Run{}, fmt.Errorf("decode manifests of run %d: %w", run.ID, err)
		}
	}
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at of run %d: %w", run.ID, err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at of run %d: %w", run.ID, err)
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// SameManifests reports whether two runs wrote identical manifest sets.
func SameManifests(a, b []manifest.Summary) bool {
	if len(a) != len(b) {
		return false
	}
	digests := make(map[string]string, len(a))
	for _, m := range a {
		digests[m.Name] = m.Digest
	}
	for _, m := range b {
		if d, ok := digests[m.Name]; !ok || d != m.Digest {
			return false
		}
	}
	return true
}
