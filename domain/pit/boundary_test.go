package pit

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitcheck/domain/core"
)

func TestBoundaryCorrect_DomainClosureAndLength(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	raw := make([]float64, 137)
	for i := range raw {
		raw[i] = rng.Float64()
	}

	corrected, err := BoundaryCorrect(raw)
	require.NoError(t, err)
	require.Len(t, corrected, len(raw))

	for i, v := range corrected {
		assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
		assert.LessOrEqual(t, v, 1.0, "index %d", i)
	}
}

func TestBoundaryCorrect_OrderPreservation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	raw := make([]float64, 60)
	for i := range raw {
		raw[i] = rng.Float64()
	}
	raw[10] = raw[40] // a deliberate tie

	corrected, err := BoundaryCorrect(raw)
	require.NoError(t, err)

	for i := range raw {
		for j := range raw {
			switch {
			case raw[i] < raw[j]:
				assert.Less(t, corrected[i], corrected[j],
					"raw[%d]=%v < raw[%d]=%v must stay ordered", i, raw[i], j, raw[j])
			case raw[i] == raw[j]:
				assert.Equal(t, corrected[i], corrected[j])
			}
		}
	}
}

func TestBoundaryCorrect_EdgeValuesUnpinned(t *testing.T) {
	raw := []float64{0.0, 0.02, 0.5, 0.98, 1.0}

	corrected, err := BoundaryCorrect(raw)
	require.NoError(t, err)
	require.Len(t, corrected, 5)

	// boundary values move strictly inside
	assert.Greater(t, corrected[0], 0.0)
	assert.Less(t, corrected[4], 1.0)

	// near-boundary values move away from the edge too
	assert.Greater(t, corrected[1], raw[1])
	assert.Less(t, corrected[3], raw[3])

	// the center barely moves
	assert.InDelta(t, 0.5, corrected[2], 0.05)

	// relative order is intact
	assert.True(t, sort.Float64sAreSorted(corrected))
}

func TestBoundaryCorrect_UniformTracksIdentity(t *testing.T) {
	madFor := func(n int, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		raw := make([]float64, n)
		for i := range raw {
			raw[i] = rng.Float64()
		}
		corrected, err := BoundaryCorrect(raw)
		require.NoError(t, err)

		var sum float64
		for i := range raw {
			sum += math.Abs(corrected[i] - raw[i])
		}
		return sum / float64(n)
	}

	small := madFor(200, 3)
	large := madFor(2000, 3)

	assert.Less(t, large, 0.05, "large uniform sample should track the identity line")
	assert.Less(t, large, small, "deviation from identity should shrink with sample size")
}

func TestBoundaryCorrect_Deterministic(t *testing.T) {
	raw := []float64{0.1, 0.2, 0.2, 0.35, 0.9, 1.0}

	first, err := BoundaryCorrect(raw)
	require.NoError(t, err)
	second, err := BoundaryCorrect(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated calls must be bit-for-bit identical")
}

func TestBoundaryCorrect_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		raw  []float64
	}{
		{"empty", nil},
		{"above one", []float64{1.5}},
		{"below zero", []float64{0.3, -0.1}},
		{"nan", []float64{0.5, math.NaN()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BoundaryCorrect(tc.raw)
			require.Error(t, err)
			assert.True(t, core.IsInvalidInputError(err), "want ErrInvalidInput, got %v", err)
		})
	}
}

func TestBoundaryCorrect_FixedBandwidth(t *testing.T) {
	raw := []float64{0.0, 0.25, 0.5, 0.75, 1.0}

	corrected, err := BoundaryCorrect(raw, WithBandwidth(0.1))
	require.NoError(t, err)
	require.Len(t, corrected, 5)
	for _, v := range corrected {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Greater(t, corrected[0], 0.0)
	assert.Less(t, corrected[4], 1.0)
}

func TestBoundaryCorrect_DegenerateSample(t *testing.T) {
	// zero spread forces the bandwidth floor instead of a collapse
	corrected, err := BoundaryCorrect([]float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	for _, v := range corrected {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Equal(t, corrected[0], corrected[1])
	assert.Equal(t, corrected[1], corrected[2])
}

func TestDensityCurve_IntegratesNearOne(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sample := make([]float64, 500)
	for i := range sample {
		sample[i] = rng.Float64()
	}

	xs, ys, err := DensityCurve(sample, 201)
	require.NoError(t, err)
	require.Len(t, xs, 201)
	require.Len(t, ys, 201)

	// trapezoid integral over [0,1] should be close to 1: the reflection
	// terms fold edge mass back instead of letting it leak
	var integral float64
	for i := 1; i < len(xs); i++ {
		integral += (ys[i] + ys[i-1]) / 2 * (xs[i] - xs[i-1])
	}
	assert.InDelta(t, 1.0, integral, 0.05)
}

func TestDensityCurve_InvalidInput(t *testing.T) {
	_, _, err := DensityCurve(nil, 100)
	assert.True(t, core.IsInvalidInputError(err))

	_, _, err = DensityCurve([]float64{0.5}, 1)
	assert.True(t, core.IsInvalidInputError(err))

	_, _, err = DensityCurve([]float64{2.0}, 100)
	assert.True(t, core.IsInvalidInputError(err))
}
