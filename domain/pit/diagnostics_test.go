package pit

import (
	"math"
	"math/rand"
	"testing"

	"pitcheck/domain/core"
)

func TestDiagnose_UniformSampleIsWellCalibrated(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	sample := make([]float64, 1000)
	for i := range sample {
		sample[i] = rng.Float64()
	}

	d, err := Diagnose(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Verdict != VerdictWellCalibrated {
		t.Errorf("uniform sample: want %s, got %s (variance=%v)", VerdictWellCalibrated, d.Verdict, d.Variance)
	}
	if d.N != 1000 {
		t.Errorf("N = %d, want 1000", d.N)
	}
	if d.KSPValue < 0 || d.KSPValue > 1 {
		t.Errorf("p-value outside [0,1]: %v", d.KSPValue)
	}
}

func TestDiagnose_HumpShapedIsOverdispersed(t *testing.T) {
	// mean of two uniforms is triangular: variance 1/24, well below 1/12
	rng := rand.New(rand.NewSource(22))
	sample := make([]float64, 800)
	for i := range sample {
		sample[i] = (rng.Float64() + rng.Float64()) / 2
	}

	d, err := Diagnose(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Verdict != VerdictOverdispersed {
		t.Errorf("hump-shaped sample: want %s, got %s (variance=%v)", VerdictOverdispersed, d.Verdict, d.Variance)
	}
}

func TestDiagnose_UShapedIsUnderdispersed(t *testing.T) {
	// inverse CDF of f(x) = 4|x - 1/2|: variance 1/8, well above 1/12
	rng := rand.New(rand.NewSource(23))
	sample := make([]float64, 800)
	for i := range sample {
		u := rng.Float64()
		dev := math.Sqrt(math.Abs(u-0.5) / 2)
		if u < 0.5 {
			dev = -dev
		}
		sample[i] = 0.5 + dev
	}

	d, err := Diagnose(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Verdict != VerdictUnderdispersed {
		t.Errorf("U-shaped sample: want %s, got %s (variance=%v)", VerdictUnderdispersed, d.Verdict, d.Variance)
	}
}

func TestDiagnose_InvalidInput(t *testing.T) {
	if _, err := Diagnose(nil); !core.IsInvalidInputError(err) {
		t.Errorf("empty: want ErrInvalidInput, got %v", err)
	}
	if _, err := Diagnose([]float64{0.5, 1.2}); !core.IsInvalidInputError(err) {
		t.Errorf("out of range: want ErrInvalidInput, got %v", err)
	}
}

func TestKSUniform_RampIsNearZero(t *testing.T) {
	n := 500
	sample := make([]float64, n)
	for i := range sample {
		sample[i] = (float64(i) + 0.5) / float64(n)
	}

	if ks := ksUniform(sample); ks > 0.01 {
		t.Errorf("even ramp should have tiny KS statistic, got %v", ks)
	}
}

func TestKSPValue_Bounds(t *testing.T) {
	if p := ksPValue(0, 100); p != 1 {
		t.Errorf("zero statistic should give p=1, got %v", p)
	}
	if p := ksPValue(0.5, 1000); p > 1e-6 {
		t.Errorf("huge deviation should give vanishing p, got %v", p)
	}
}
