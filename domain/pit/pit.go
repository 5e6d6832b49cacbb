package pit

import (
	"pitcheck/domain/core"
)

// RawPIT returns the fraction of posterior predictive draws at or below the
// observed value: the probability integral transform position of the
// observation within its own leave-one-out predictive distribution. Values
// cluster at exactly 0 or 1 when the draw set does not span the observation.
func RawPIT(draws []float64, observed float64) (float64, error) {
	if len(draws) == 0 {
		return 0, core.ErrEmptyInput
	}
	count := 0
	for _, d := range draws {
		if d <= observed {
			count++
		}
	}
	return float64(count) / float64(len(draws)), nil
}

// RawPITMatrix computes one raw PIT value per row of the draw matrix, in
// observation order
func RawPITMatrix(m *DrawMatrix) ([]float64, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, m.Len())
	for i := range out {
		v, err := RawPIT(m.PosteriorDraws(i), m.ObservedValue(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
