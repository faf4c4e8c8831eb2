package tsa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// LjungBoxResult holds the portmanteau test for residual autocorrelation.
// Small p-values reject the null of white-noise residuals.
type LjungBoxResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Lags      int     `json:"lags"`
	DOF       int     `json:"dof"`
}

// LjungBox computes Q = n(n+2)·Σ_{k=1..h} r_k²/(n−k) on the residuals
// and its chi-squared tail probability. fitdf is the number of
// parameters the residuals came from (the AR order); it is subtracted
// from the degrees of freedom, floored at one.
func LjungBox(resid []float64, lags, fitdf int) (*LjungBoxResult, error) {
	n := len(resid)
	if lags < 1 {
		return nil, fmt.Errorf("ljung-box needs at least 1 lag, got %d", lags)
	}
	if n <= lags+1 {
		return nil, fmt.Errorf("ljung-box at %d lags needs more than %d residuals, have %d", lags, lags+1, n)
	}

	r := ACF(&Series{Name: "resid", Values: resid}, lags)
	if r == nil {
		return nil, fmt.Errorf("ljung-box: residuals have zero variance")
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += r[k] * r[k] / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}
	chi2 := distuv.ChiSquared{K: float64(dof)}
	return &LjungBoxResult{
		Statistic: q,
		PValue:    1 - chi2.CDF(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// DurbinWatson computes Σ(e_t − e_{t−1})²/Σe_t². Values near 2 indicate
// no first-order autocorrelation. Returns NaN on fewer than two
// residuals or a degenerate denominator.
func DurbinWatson(resid []float64) float64 {
	if len(resid) < 2 {
		return math.NaN()
	}
	var num, den float64
	for i, e := range resid {
		den += e * e
		if i > 0 {
			d := e - resid[i-1]
			num += d * d
		}
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
