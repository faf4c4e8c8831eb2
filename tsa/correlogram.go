package tsa

import (
	"math"
)

// ACF computes the autocorrelation function for lags 0..maxLag using the
// biased estimator (normalizing by the lag-0 sum of squares). The value
// at lag 0 is always 1. Returns nil when the series is empty or has zero
// variance.
func ACF(s *Series, maxLag int) []float64 {
	n := s.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := s.Mean()
	denom := 0.0
	for _, v := range s.Values {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (s.Values[i] - mean) * (s.Values[i-k] - mean)
		}
		acf[k] = sum / denom
	}
	return acf
}

// PACF computes the partial autocorrelation function for lags 0..maxLag
// with the Durbin-Levinson recursion on the ACF. The value at lag 0 is 1.
func PACF(s *Series, maxLag int) []float64 {
	n := s.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 1 {
		return nil
	}

	acf := ACF(s, maxLag)
	if acf == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1

	// phi holds the AR coefficients of the order-k recursion.
	phi := make([]float64, maxLag+1)
	prev := make([]float64, maxLag+1)

	phi[1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		copy(prev, phi)

		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= prev[j] * acf[k-j]
			den -= prev[j] * acf[j]
		}
		if den == 0 {
			pacf[k] = 0
			continue
		}

		phi[k] = num / den
		pacf[k] = phi[k]
		for j := 1; j < k; j++ {
			phi[j] = prev[j] - phi[k]*prev[k-j]
		}
	}
	return pacf
}

// CorrelogramResult bundles the ACF and PACF of a series with the
// white-noise confidence bound and the lags exceeding it.
type CorrelogramResult struct {
	Lags            int       `json:"lags"`
	ACF             []float64 `json:"acf"`
	PACF            []float64 `json:"pacf"`
	ConfBound       float64   `json:"conf_bound"` // ±1.96/sqrt(n)
	SignificantACF  []int     `json:"significant_acf"`
	SignificantPACF []int     `json:"significant_pacf"`
}

// Correlogram computes ACF and PACF up to maxLag together with the 95%
// white-noise band. Returns nil for degenerate series.
func Correlogram(s *Series, maxLag int) *CorrelogramResult {
	acf := ACF(s, maxLag)
	if acf == nil {
		return nil
	}
	pacf := PACF(s, maxLag)

	bound := 1.96 / math.Sqrt(float64(s.Len()))
	return &CorrelogramResult{
		Lags:            len(acf) - 1,
		ACF:             acf,
		PACF:            pacf,
		ConfBound:       bound,
		SignificantACF:  significantLags(acf, bound),
		SignificantPACF: significantLags(pacf, bound),
	}
}

// significantLags lists the lags (excluding 0) whose value exceeds the
// confidence bound in absolute terms.
func significantLags(values []float64, bound float64) []int {
	var lags []int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > bound {
			lags = append(lags, i)
		}
	}
	return lags
}
