package tsa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ARModel is a fitted autoregressive model
//
//	y_t = c + φ1·y_{t−1} + … + φp·y_{t−p} + ε_t
//
// estimated by conditional least squares on the usable rows t = p..n−1.
type ARModel struct {
	Order   int       `json:"order"`
	Const   float64   `json:"const"`
	Coeffs  []float64 `json:"coeffs"`   // φ1..φp
	StdErrs []float64 `json:"std_errs"` // standard errors of [c, φ1..φp]
	Sigma2  float64   `json:"sigma2"`   // df-adjusted residual variance
	LogLik  float64   `json:"log_lik"`
	AIC     float64   `json:"aic"`
	AICc    float64   `json:"aicc"`
	BIC     float64   `json:"bic"`
	NObs    int       `json:"n_obs"` // regression rows, n − p

	resid  []float64
	fitted []float64
	tail   []float64 // last p observations, oldest first, for forecasting
}

// FitAR estimates an AR(p) model. Order 0 fits the mean-only model. The
// information criteria count k = p+1 parameters (constant plus lag
// coefficients) against the n−p usable rows.
func FitAR(s *Series, p int) (*ARModel, error) {
	n := s.Len()
	if p < 0 {
		return nil, fmt.Errorf("negative AR order %d", p)
	}
	m := n - p
	k := p + 1
	// One spare row beyond the coefficient count keeps the AICc
	// denominator m-k-1 positive.
	if m <= k+1 {
		return nil, fmt.Errorf("AR(%d) needs at least %d observations, have %d", p, p+k+2, n)
	}

	x := mat.NewDense(m, k, nil)
	y := make([]float64, m)
	for i := 0; i < m; i++ {
		t := p + i
		y[i] = s.Values[t]
		x.Set(i, 0, 1)
		for j := 1; j <= p; j++ {
			x.Set(i, j, s.Values[t-j])
		}
	}

	fit, err := regressOLS(x, y)
	if err != nil {
		return nil, fmt.Errorf("AR(%d) fit: %w", p, err)
	}

	aic := -2*fit.LogLik + 2*float64(k)
	bic := -2*fit.LogLik + float64(k)*math.Log(float64(m))
	aicc := aic + 2*float64(k)*float64(k+1)/(float64(m)-float64(k)-1)

	fitted := make([]float64, m)
	for i := range fitted {
		fitted[i] = y[i] - fit.Resid[i]
	}

	tail := make([]float64, p)
	copy(tail, s.Values[n-p:])

	return &ARModel{
		Order:   p,
		Const:   fit.Coeffs[0],
		Coeffs:  fit.Coeffs[1:],
		StdErrs: fit.StdErr,
		Sigma2:  fit.SSE / float64(m-k),
		LogLik:  fit.LogLik,
		AIC:     aic,
		AICc:    aicc,
		BIC:     bic,
		NObs:    m,
		resid:   fit.Resid,
		fitted:  fitted,
		tail:    tail,
	}, nil
}

// Residuals returns a copy of the in-sample residuals.
func (m *ARModel) Residuals() []float64 {
	out := make([]float64, len(m.resid))
	copy(out, m.resid)
	return out
}

// Fitted returns a copy of the in-sample fitted values.
func (m *ARModel) Fitted() []float64 {
	out := make([]float64, len(m.fitted))
	copy(out, m.fitted)
	return out
}

// Forecast iterates the fitted recursion forward from the end of the
// training sample and returns the mean path for the given horizon.
func (m *ARModel) Forecast(steps int) []float64 {
	if steps < 1 {
		return nil
	}
	p := m.Order
	history := make([]float64, len(m.tail), len(m.tail)+steps)
	copy(history, m.tail)

	out := make([]float64, steps)
	for h := 0; h < steps; h++ {
		pred := m.Const
		for j := 1; j <= p; j++ {
			pred += m.Coeffs[j-1] * history[len(history)-j]
		}
		out[h] = pred
		history = append(history, pred)
	}
	return out
}

// Mean returns the unconditional process mean c/(1−Σφ_i), or NaN when
// the lag polynomial sums to one (a unit root).
func (m *ARModel) Mean() float64 {
	sum := 0.0
	for _, c := range m.Coeffs {
		sum += c
	}
	if sum == 1 {
		return math.NaN()
	}
	return m.Const / (1 - sum)
}
