package tsa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ADFResult is the outcome of an augmented Dickey-Fuller unit-root test.
// The null hypothesis is that the series has a unit root; Stationary is
// true when the null is rejected at the 5% level.
type ADFResult struct {
	Statistic      float64            `json:"statistic"`
	PValue         float64            `json:"p_value"`
	Lags           int                `json:"lags"`  // lag order of the test regression
	NObs           int                `json:"n_obs"` // observations used by the regression
	CriticalValues map[string]float64 `json:"critical_values"`
	ICBest         float64            `json:"ic_best"` // AIC of the selected lag regression
	Stationary     bool               `json:"stationary"`
}

// ADF runs the augmented Dickey-Fuller test with a constant term:
//
//	Δy_t = α + β·y_{t−1} + Σ γ_i·Δy_{t−i} + ε_t
//
// The reported statistic is the t-ratio of β. When maxLag is negative
// the lag order is chosen by minimizing AIC over 0..ceil(12·(n/100)^¼)
// on a common sample, then the test regression is refit on the full
// usable sample; otherwise the given lag is used as-is.
func ADF(s *Series, maxLag int) (*ADFResult, error) {
	n := s.Len()
	if n < 12 {
		return nil, fmt.Errorf("ADF needs at least 12 observations, have %d", n)
	}

	diff := s.Diff()

	autoLag := maxLag < 0
	if autoLag {
		maxLag = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if limit := (n-1)/2 - 2; maxLag > limit {
		maxLag = limit
	}
	if maxLag < 0 {
		return nil, fmt.Errorf("series too short for the ADF regression (%d observations)", n)
	}

	chosen := maxLag
	icBest := math.Inf(1)
	if autoLag {
		// Candidate lags compete on the same sample, the one the
		// longest regression leaves available.
		for lag := 0; lag <= maxLag; lag++ {
			fit, err := adfRegression(s, diff, maxLag, lag)
			if err != nil {
				continue
			}
			if aic := fit.AIC(); aic < icBest {
				icBest = aic
				chosen = lag
			}
		}
		if math.IsInf(icBest, 1) {
			return nil, fmt.Errorf("no ADF regression could be estimated for %s", s.Name)
		}
	}

	fit, err := adfRegression(s, diff, chosen, chosen)
	if err != nil {
		return nil, err
	}
	if !autoLag {
		icBest = fit.AIC()
	}

	stat := fit.TStat(1)
	pValue := mackinnonPValue(stat)

	return &ADFResult{
		Statistic:      stat,
		PValue:         pValue,
		Lags:           chosen,
		NObs:           fit.NObs,
		CriticalValues: mackinnonCritValues(fit.NObs),
		ICBest:         icBest,
		Stationary:     pValue < 0.05,
	}, nil
}

// adfRegression estimates the test equation with the given lag order,
// using rows t = start+1 .. n-1 so callers can hold the sample fixed
// across candidate lags.
func adfRegression(s *Series, diff *Series, start, lag int) (*olsFit, error) {
	n := s.Len()
	m := n - 1 - start
	k := lag + 2
	if m <= k {
		return nil, fmt.Errorf("ADF lag %d leaves %d observations for %d coefficients", lag, m, k)
	}

	x := mat.NewDense(m, k, nil)
	y := make([]float64, m)
	for i := 0; i < m; i++ {
		t := start + 1 + i
		y[i] = diff.Values[t-1]
		x.Set(i, 0, 1)
		x.Set(i, 1, s.Values[t-1])
		for j := 1; j <= lag; j++ {
			x.Set(i, 1+j, diff.Values[t-1-j])
		}
	}
	return regressOLS(x, y)
}

// MacKinnon (1994) approximate asymptotic p-value for the
// constant-only Dickey-Fuller distribution. Outside the tabulated range
// the p-value saturates at 0 or 1.
var (
	adfTauMin   = -18.83
	adfTauMax   = 2.74
	adfTauStar  = -1.61
	adfSmallP   = []float64{2.1659, 1.4412, 0.038269}
	adfLargeP   = []float64{1.7339, 0.93202, -0.12745, -0.010368}
	adfCritSurf = map[string][4]float64{
		// MacKinnon (2010) response-surface coefficients, constant only.
		"1%":  {-3.43035, -6.5393, -16.786, -79.433},
		"5%":  {-2.86154, -2.8903, -4.234, -40.040},
		"10%": {-2.56677, -1.5384, -2.809, 0},
	}
)

func mackinnonPValue(stat float64) float64 {
	switch {
	case stat > adfTauMax:
		return 1
	case stat < adfTauMin:
		return 0
	}
	poly := adfLargeP
	if stat <= adfTauStar {
		poly = adfSmallP
	}
	z := 0.0
	for i := len(poly) - 1; i >= 0; i-- {
		z = z*stat + poly[i]
	}
	return distuv.UnitNormal.CDF(z)
}

// mackinnonCritValues evaluates the finite-sample response surface
// crit = b0 + b1/n + b2/n² + b3/n³ at the regression sample size.
func mackinnonCritValues(nobs int) map[string]float64 {
	n := float64(nobs)
	crit := make(map[string]float64, len(adfCritSurf))
	for level, b := range adfCritSurf {
		crit[level] = b[0] + b[1]/n + b[2]/(n*n) + b[3]/(n*n*n)
	}
	return crit
}

// DiffUntilStationary differences a series until the ADF test rejects a
// unit root, up to maxD times, and returns the order reached along with
// the trail of test results (one per differencing level tried).
func DiffUntilStationary(s *Series, maxD int) (int, []ADFResult, error) {
	current := s
	var trail []ADFResult
	for d := 0; ; d++ {
		res, err := ADF(current, -1)
		if err != nil {
			return d, trail, err
		}
		trail = append(trail, *res)
		if res.Stationary || d == maxD {
			return d, trail, nil
		}
		current = current.Diff()
	}
}
