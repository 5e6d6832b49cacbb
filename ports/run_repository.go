package ports

import (
	"context"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
)

// RunSummary is the persisted record of one calibration run
type RunSummary struct {
	ID           core.RunID      `json:"id" db:"id"`
	ObsPath      string          `json:"obs_path" db:"obs_path"`
	DrawsPath    string          `json:"draws_path" db:"draws_path"`
	Observations int             `json:"observations" db:"observations"`
	DrawsPerObs  int             `json:"draws_per_obs" db:"draws_per_obs"`
	Seed         int64           `json:"seed" db:"seed"`
	Diagnostics  pit.Diagnostics `json:"diagnostics"`
	CreatedAt    core.Timestamp  `json:"created_at" db:"created_at"`
}

// RunRepository persists calibration run summaries
type RunRepository interface {
	Create(ctx context.Context, summary *RunSummary) error
	GetByID(ctx context.Context, id core.RunID) (*RunSummary, error)
	ListRecent(ctx context.Context, limit int) ([]*RunSummary, error)
}
