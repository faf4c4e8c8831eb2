package tsa

import (
	"fmt"
	"math"
)

// KPSSResult is the outcome of a KPSS level-stationarity test. The null
// hypothesis is that the series is stationary around a constant, so
// Stationary is true when the null is NOT rejected at the 5% level.
type KPSSResult struct {
	Statistic      float64            `json:"statistic"`
	PValue         float64            `json:"p_value"`
	Lags           int                `json:"lags"` // Newey-West bandwidth
	CriticalValues map[string]float64 `json:"critical_values"`
	Stationary     bool               `json:"stationary"`
}

// kpssCrit pairs the tabulated level-stationarity statistic with its
// upper-tail probability; the reported p-value is interpolated between
// entries and clamped to [0.01, 0.10] outside them.
var kpssCrit = []struct {
	stat float64
	p    float64
}{
	{0.347, 0.10},
	{0.463, 0.05},
	{0.574, 0.025},
	{0.739, 0.01},
}

// KPSS runs the Kwiatkowski-Phillips-Schmidt-Shin test for level
// stationarity. nlags sets the Newey-West bandwidth; a non-positive
// value selects ceil(12·(n/100)^¼).
func KPSS(s *Series, nlags int) (*KPSSResult, error) {
	n := s.Len()
	if n < 12 {
		return nil, fmt.Errorf("KPSS needs at least 12 observations, have %d", n)
	}
	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	mean := s.Mean()
	resid := make([]float64, n)
	for i, v := range s.Values {
		resid[i] = v - mean
	}

	// Partial sums of the demeaned series.
	cumSum := make([]float64, n)
	cumSum[0] = resid[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + resid[i]
	}

	// Long-run variance with Bartlett weights.
	s2 := 0.0
	for _, r := range resid {
		s2 += r * r
	}
	s2 /= float64(n)
	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += resid[i] * resid[i-l]
		}
		cov /= float64(n)
		s2 += 2 * (1 - float64(l)/float64(nlags+1)) * cov
	}
	if s2 <= 0 {
		return nil, fmt.Errorf("degenerate long-run variance for %s", s.Name)
	}

	eta := 0.0
	for _, c := range cumSum {
		eta += c * c
	}
	stat := eta / (float64(n) * float64(n) * s2)

	pValue := kpssPValue(stat)

	return &KPSSResult{
		Statistic: stat,
		PValue:    pValue,
		Lags:      nlags,
		CriticalValues: map[string]float64{
			"10%":  kpssCrit[0].stat,
			"5%":   kpssCrit[1].stat,
			"2.5%": kpssCrit[2].stat,
			"1%":   kpssCrit[3].stat,
		},
		Stationary: pValue >= 0.05,
	}, nil
}

// kpssPValue interpolates the upper-tail probability in the tabulated
// critical values.
func kpssPValue(stat float64) float64 {
	if stat <= kpssCrit[0].stat {
		return kpssCrit[0].p
	}
	if stat >= kpssCrit[len(kpssCrit)-1].stat {
		return kpssCrit[len(kpssCrit)-1].p
	}
	for i := 1; i < len(kpssCrit); i++ {
		lo, hi := kpssCrit[i-1], kpssCrit[i]
		if stat <= hi.stat {
			frac := (stat - lo.stat) / (hi.stat - lo.stat)
			return lo.p + frac*(hi.p-lo.p)
		}
	}
	return kpssCrit[len(kpssCrit)-1].p
}
