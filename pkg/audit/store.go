// Package audit persists the pipeline's audit trail in SQLite: one row per
// stage run with its statistics, plus the individual rejections, coercion
// drops and per-column fills of each cleaning run. The store is the durable
// counterpart of the run-statistics objects the stages return.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"medallion/pkg/audit/migrations"
	"medallion/pkg/silver"
)

// Store persists pipeline run history in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Run is one recorded stage execution.
type Run struct {
	ID         string    `json:"id"`
	Stage      string    `json:"stage"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Succeeded  bool      `json:"succeeded"`
	StatsJSON  string    `json:"stats"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens the audit store at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("audit store path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordRun inserts one stage execution with its statistics object.
func (s *Store) RecordRun(ctx context.Context, runID, stage string, startedAt, finishedAt time.Time, succeeded bool, stats any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("audit store is not configured")
	}
	if strings.TrimSpace(runID) == "" {
		return fmt.Errorf("run id is required")
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	succeededInt := 0
	if succeeded {
		succeededInt = 1
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO pipeline_runs (id, stage, started_at, finished_at, succeeded, stats)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID,
		stage,
		startedAt.UTC().UnixMilli(),
		finishedAt.UTC().UnixMilli(),
		succeededInt,
		string(statsJSON),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecordCleaning persists the full audit trail of one cleaning run: every
// rejection with the rules it violated, every coercion drop, and the
// per-column fill counts. All inserts happen in one transaction.
func (s *Store) RecordCleaning(ctx context.Context, runID string, result *silver.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("audit store is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cleaning audit: %w", err)
	}
	defer tx.Rollback()

	for _, rejection := range result.Rejections {
		for _, violation := range rejection.Violations {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO rejections (run_id, row_number, employee_id, name, rule, value)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				runID, rejection.Row, rejection.EmployeeID, rejection.Name,
				string(violation.Rule), violation.Value,
			); err != nil {
				return fmt.Errorf("record rejection: %w", err)
			}
		}
	}

	for _, drop := range result.CoercionDrops {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO coercion_drops (run_id, row_number, column_name, raw_value)
			 VALUES (?, ?, ?, ?)`,
			runID, drop.Row, drop.Column, drop.RawValue,
		); err != nil {
			return fmt.Errorf("record coercion drop: %w", err)
		}
	}

	for column, fills := range result.Stats.MissingValuesFilled {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO column_fills (run_id, column_name, fills)
			 VALUES (?, ?, ?)`,
			runID, column, fills,
		); err != nil {
			return fmt.Errorf("record column fills: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cleaning audit: %w", err)
	}
	return nil
}

// Runs returns the most recent recorded stage executions, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("audit store is not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, stage, started_at, finished_at, succeeded, stats
		   FROM pipeline_runs
		  ORDER BY started_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt, finishedAt int64
		var succeeded int
		if err := rows.Scan(&run.ID, &run.Stage, &startedAt, &finishedAt, &succeeded, &run.StatsJSON); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		run.FinishedAt = time.UnixMilli(finishedAt).UTC()
		run.Succeeded = succeeded != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// RejectionCount returns the number of rejection audit entries for a run.
func (s *Store) RejectionCount(ctx context.Context, runID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("audit store is not configured")
	}

	var count int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM rejections WHERE run_id = ?`,
		runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count rejections: %w", err)
	}
	return count, nil
}
