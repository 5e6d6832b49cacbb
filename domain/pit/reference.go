package pit

import (
	"fmt"
	"math/rand"
	"sort"

	"pitcheck/domain/core"
)

// GenerateReferenceSeries draws nSeries independent sorted uniform(0,1)
// samples of nPoints each and boundary-corrects every series with the same
// procedure applied to observed PIT values. Sorted uniform CDF values trace
// the identity line in expectation, so the corrected series form the
// reference band a calibrated model's PIT values should fall inside.
//
// The correction must match the one applied to the observed values,
// otherwise the overlay comparison is not apples-to-apples.
//
// Output is fully determined by the state of rng and the bandwidth rule.
func GenerateReferenceSeries(rng *rand.Rand, nSeries, nPoints int, opts ...CorrectionOption) ([][]float64, error) {
	if rng == nil {
		return nil, core.NewInvalidInputError("nil random source")
	}
	if nSeries <= 0 {
		return nil, fmt.Errorf("%w: n_series %d", core.ErrNonPositive, nSeries)
	}
	if nPoints <= 0 {
		return nil, fmt.Errorf("%w: n_points %d", core.ErrNonPositive, nPoints)
	}

	series := make([][]float64, nSeries)
	for s := range series {
		draw := make([]float64, nPoints)
		for i := range draw {
			draw[i] = rng.Float64()
		}
		sort.Float64s(draw)

		corrected, err := BoundaryCorrect(draw, opts...)
		if err != nil {
			return nil, err
		}
		series[s] = corrected
	}
	return series, nil
}
