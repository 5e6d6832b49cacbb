package ports

import (
	"pitcheck/domain/core"
)

// Renderer produces the diagnostic presentation artifacts. Style and sizing
// are fixed at construction so every call is reproducible without ambient
// plotting state.
type Renderer interface {
	// RenderOverlay draws the raw and corrected PIT densities over the
	// reference band
	RenderOverlay(path string, raw, corrected []float64, reference [][]float64) error

	// RenderGroupPanel draws one group's density/ECDF panel, returning the
	// written file path
	RenderGroupPanel(dir string, group core.GroupLabel, corrected []float64) (string, error)

	// RenderAnimation writes the cumulative ECDF accumulation sequence
	RenderAnimation(path string, corrected []float64, frames int) error
}
