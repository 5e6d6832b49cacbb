package testkit

import (
	"math/rand"
	"testing"

	"pitcheck/domain/pit"
)

func TestNewFixture_Shape(t *testing.T) {
	fixture := NewFixture(rand.New(rand.NewSource(1)), ScenarioCalibrated, 40, 100)

	if len(fixture.Observations) != 40 {
		t.Fatalf("expected 40 observations, got %d", len(fixture.Observations))
	}
	if err := fixture.Matrix.Validate(); err != nil {
		t.Fatalf("fixture matrix invalid: %v", err)
	}
	if got := len(fixture.Matrix.Draws[0]); got != 100 {
		t.Fatalf("expected 100 draws per observation, got %d", got)
	}
	if len(pit.Groups(fixture.Observations)) != 4 {
		t.Errorf("expected 4 groups, got %v", pit.Groups(fixture.Observations))
	}
}

func TestNewFixture_ScenarioDispersion(t *testing.T) {
	// the raw PIT variance must order underdispersed > calibrated > overdispersed
	variance := func(scenario Scenario) float64 {
		fixture := NewFixture(rand.New(rand.NewSource(7)), scenario, 300, 500)
		raw, err := pit.RawPITMatrix(fixture.Matrix)
		if err != nil {
			t.Fatalf("%s: %v", scenario, err)
		}
		d, err := pit.Diagnose(raw)
		if err != nil {
			t.Fatalf("%s: %v", scenario, err)
		}
		return d.Variance
	}

	calibrated := variance(ScenarioCalibrated)
	over := variance(ScenarioOverdispersed)
	under := variance(ScenarioUnderdispersed)

	if !(under > calibrated && calibrated > over) {
		t.Errorf("dispersion ordering broken: under=%v calibrated=%v over=%v", under, calibrated, over)
	}
}

func TestNewFixture_Deterministic(t *testing.T) {
	a := NewFixture(rand.New(rand.NewSource(3)), ScenarioCalibrated, 10, 20)
	b := NewFixture(rand.New(rand.NewSource(3)), ScenarioCalibrated, 10, 20)

	for i := range a.Matrix.Observed {
		if a.Matrix.Observed[i] != b.Matrix.Observed[i] {
			t.Fatal("same seed must reproduce the fixture exactly")
		}
	}
}
