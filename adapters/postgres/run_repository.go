package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
	"pitcheck/ports"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new calibration run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// EnsureSchema creates the calibration_runs table if it does not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS calibration_runs (
		id TEXT PRIMARY KEY,
		obs_path TEXT NOT NULL,
		draws_path TEXT NOT NULL,
		observations INT NOT NULL,
		draws_per_obs INT NOT NULL,
		seed BIGINT NOT NULL,
		diagnostics JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure calibration_runs schema: %w", err)
	}
	return nil
}

// Create inserts a new run summary into the database
func (r *runRepository) Create(ctx context.Context, summary *ports.RunSummary) error {
	diagJSON, err := json.Marshal(summary.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostics: %w", err)
	}

	query := `INSERT INTO calibration_runs (
		id, obs_path, draws_path, observations, draws_per_obs, seed, diagnostics, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8
	)`

	_, err = r.db.ExecContext(ctx, query,
		summary.ID.String(), summary.ObsPath, summary.DrawsPath,
		summary.Observations, summary.DrawsPerObs, summary.Seed,
		diagJSON, summary.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create calibration run: %w", err)
	}
	return nil
}

// GetByID retrieves a run summary by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*ports.RunSummary, error) {
	query := `SELECT id, obs_path, draws_path, observations, draws_per_obs, seed, diagnostics, created_at
	FROM calibration_runs WHERE id = $1`

	return r.scanRow(r.db.QueryRowContext(ctx, query, id.String()), id)
}

// ListRecent retrieves the most recent run summaries
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]*ports.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, obs_path, draws_path, observations, draws_per_obs, seed, diagnostics, created_at
	FROM calibration_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calibration runs: %w", err)
	}
	defer rows.Close()

	var summaries []*ports.RunSummary
	for rows.Next() {
		summary, err := scanSummary(rows.Scan)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (r *runRepository) scanRow(row *sql.Row, id core.RunID) (*ports.RunSummary, error) {
	summary, err := scanSummary(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("calibration run not found: %s", id)
		}
		return nil, err
	}
	return summary, nil
}

func scanSummary(scan func(dest ...interface{}) error) (*ports.RunSummary, error) {
	var summary ports.RunSummary
	var idStr string
	var diagJSON []byte
	var createdAt time.Time

	err := scan(
		&idStr, &summary.ObsPath, &summary.DrawsPath,
		&summary.Observations, &summary.DrawsPerObs, &summary.Seed,
		&diagJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	summary.ID = core.RunID(idStr)
	summary.CreatedAt = core.NewTimestamp(createdAt)

	var diag pit.Diagnostics
	if err := json.Unmarshal(diagJSON, &diag); err != nil {
		return nil, fmt.Errorf("failed to unmarshal diagnostics: %w", err)
	}
	summary.Diagnostics = diag
	return &summary, nil
}
