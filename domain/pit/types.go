package pit

import (
	"fmt"

	"pitcheck/domain/core"
)

// Observation is one row of the input table: a response, its covariate,
// and a group label used for faceting only
type Observation struct {
	Response  float64         `json:"response"`
	Covariate float64         `json:"covariate"`
	Group     core.GroupLabel `json:"group"`
}

// DrawMatrix holds the precomputed leave-one-out posterior predictive draws,
// one fixed-size row per observation, plus the observed responses. It is
// treated as an opaque artifact produced by an external sampler and is
// read-only after load.
type DrawMatrix struct {
	Observed []float64   `json:"observed"`
	Draws    [][]float64 `json:"draws"`
}

// Len returns the number of observations covered by the matrix
func (m *DrawMatrix) Len() int {
	return len(m.Draws)
}

// PosteriorDraws returns the predictive draws for observation i
func (m *DrawMatrix) PosteriorDraws(i int) []float64 {
	return m.Draws[i]
}

// ObservedValue returns the observed response for observation i
func (m *DrawMatrix) ObservedValue(i int) float64 {
	return m.Observed[i]
}

// Validate checks the matrix shape: one observed value per draw row,
// a non-empty matrix, and a constant draw count across rows
func (m *DrawMatrix) Validate() error {
	if len(m.Draws) == 0 {
		return core.NewInvalidInputError("draw matrix has no rows")
	}
	if len(m.Observed) != len(m.Draws) {
		return core.NewShapeError(len(m.Observed), len(m.Draws))
	}
	width := len(m.Draws[0])
	if width == 0 {
		return core.NewInvalidInputError("draw matrix has empty rows")
	}
	for i, row := range m.Draws {
		if len(row) != width {
			return core.NewInvalidInputError(
				fmt.Sprintf("draw matrix rows have uneven lengths at row %d", i))
		}
	}
	return nil
}

// Groups returns the distinct group labels in first-appearance order
func Groups(observations []Observation) []core.GroupLabel {
	seen := make(map[core.GroupLabel]bool)
	var out []core.GroupLabel
	for _, obs := range observations {
		if !seen[obs.Group] {
			seen[obs.Group] = true
			out = append(out, obs.Group)
		}
	}
	return out
}

// GroupIndices returns the observation indices belonging to the given group,
// in observation order
func GroupIndices(observations []Observation, group core.GroupLabel) []int {
	var idx []int
	for i, obs := range observations {
		if obs.Group == group {
			idx = append(idx, i)
		}
	}
	return idx
}
