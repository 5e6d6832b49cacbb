package testkit

import (
	"math/rand"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
)

// Scenario selects the dispersion defect baked into a synthetic fixture
type Scenario string

const (
	// ScenarioCalibrated draws the predictive from the true data distribution
	ScenarioCalibrated Scenario = "calibrated"
	// ScenarioOverdispersed makes the predictive twice as wide as the data
	ScenarioOverdispersed Scenario = "overdispersed"
	// ScenarioUnderdispersed makes the predictive half as wide as the data
	ScenarioUnderdispersed Scenario = "underdispersed"
)

var groupLabels = []core.GroupLabel{"north", "east", "south", "west"}

// Fixture bundles a synthetic observation table with a matching draw matrix,
// standing in for the external sampler's precomputed artifact
type Fixture struct {
	Observations []pit.Observation
	Matrix       *pit.DrawMatrix
}

// NewFixture simulates a small hierarchical regression: each group has its
// own intercept, responses follow a noisy linear trend in the covariate, and
// the predictive draws for each observation come from the scenario's
// (possibly misscaled) distribution. Fully determined by the rng state.
func NewFixture(rng *rand.Rand, scenario Scenario, nObs, nDraws int) *Fixture {
	const (
		slope      = 1.8
		noiseScale = 1.0
	)

	predictiveScale := noiseScale
	switch scenario {
	case ScenarioOverdispersed:
		predictiveScale = noiseScale * 2.0
	case ScenarioUnderdispersed:
		predictiveScale = noiseScale * 0.5
	}

	intercepts := make(map[core.GroupLabel]float64, len(groupLabels))
	for _, g := range groupLabels {
		intercepts[g] = rng.NormFloat64() * 2.0
	}

	fixture := &Fixture{
		Observations: make([]pit.Observation, nObs),
		Matrix: &pit.DrawMatrix{
			Observed: make([]float64, nObs),
			Draws:    make([][]float64, nObs),
		},
	}

	for i := 0; i < nObs; i++ {
		group := groupLabels[i%len(groupLabels)]
		covariate := rng.Float64() * 10
		mu := intercepts[group] + slope*covariate
		response := mu + rng.NormFloat64()*noiseScale

		fixture.Observations[i] = pit.Observation{
			Response:  response,
			Covariate: covariate,
			Group:     group,
		}
		fixture.Matrix.Observed[i] = response

		draws := make([]float64, nDraws)
		for d := range draws {
			draws[d] = mu + rng.NormFloat64()*predictiveScale
		}
		fixture.Matrix.Draws[i] = draws
	}
	return fixture
}
