package pit

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"pitcheck/domain/core"
)

// Verdict classifies the dispersion of a PIT sample relative to uniform
type Verdict string

const (
	VerdictWellCalibrated Verdict = "well_calibrated"
	VerdictOverdispersed  Verdict = "overdispersed"
	VerdictUnderdispersed Verdict = "underdispersed"
)

// uniformVariance is the variance of U(0,1); a calibrated PIT sample should
// match it. Hump-shaped PIT (variance below) means the predictive
// distribution is too wide; U-shaped PIT (variance above) means too narrow.
const uniformVariance = 1.0 / 12.0

// varianceBand is the relative tolerance around 1/12 before a dispersion
// verdict is issued. Conservative on small samples.
const varianceBand = 0.15

// Diagnostics summarizes how a PIT sample compares to the uniform
// distribution
type Diagnostics struct {
	N           int     `json:"n"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	StdDev      float64 `json:"std_dev"`
	Variance    float64 `json:"variance"`
	KSStatistic float64 `json:"ks_statistic"`
	KSPValue    float64 `json:"ks_p_value"`
	Verdict     Verdict `json:"verdict"`
	Description string  `json:"description"`
}

// Diagnose scores a PIT sample against uniform(0,1). It should see the raw
// PIT values: the boundary correction re-expresses a sample through its own
// smoothed CDF and flattens the dispersion signal the verdict reads.
// Fails with core.ErrInvalidInput on empty input or values outside [0,1].
func Diagnose(values []float64) (Diagnostics, error) {
	if len(values) == 0 {
		return Diagnostics{}, core.ErrEmptyInput
	}
	for i, v := range values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return Diagnostics{}, core.NewOutOfRangeError(i, v)
		}
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	sd, _ := stats.StandardDeviationSample(values)
	variance := sd * sd

	ks := ksUniform(values)
	d := Diagnostics{
		N:           len(values),
		Mean:        mean,
		Median:      median,
		StdDev:      sd,
		Variance:    variance,
		KSStatistic: ks,
		KSPValue:    ksPValue(ks, len(values)),
	}

	switch {
	case variance < uniformVariance*(1-varianceBand):
		d.Verdict = VerdictOverdispersed
		d.Description = fmt.Sprintf(
			"PIT values concentrate near 0.5 (variance %.4f < %.4f): the predictive distribution is wider than the data warrants",
			variance, uniformVariance)
	case variance > uniformVariance*(1+varianceBand):
		d.Verdict = VerdictUnderdispersed
		d.Description = fmt.Sprintf(
			"PIT values pile up near 0 and 1 (variance %.4f > %.4f): the predictive distribution is narrower than the data warrants",
			variance, uniformVariance)
	default:
		d.Verdict = VerdictWellCalibrated
		d.Description = fmt.Sprintf(
			"PIT variance %.4f is consistent with uniform (KS=%.4f, p=%.3f)",
			variance, ks, d.KSPValue)
	}
	return d, nil
}

// ksUniform computes the one-sample Kolmogorov-Smirnov statistic against
// the uniform CDF on [0,1]
func ksUniform(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	maxDev := 0.0
	for i, v := range sorted {
		upper := float64(i+1)/n - v
		lower := v - float64(i)/n
		if upper > maxDev {
			maxDev = upper
		}
		if lower > maxDev {
			maxDev = lower
		}
	}
	return maxDev
}

// ksPValue approximates the asymptotic Kolmogorov p-value with the
// Stephens small-sample adjustment of the effective sample size
func ksPValue(d float64, n int) float64 {
	if d <= 0 {
		return 1
	}
	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d

	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * lambda * lambda)
		sum += sign * term
		sign = -sign
		if term < 1e-12 {
			break
		}
	}
	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
