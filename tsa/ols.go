package tsa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// olsFit holds an ordinary least squares fit of y on the columns of a
// design matrix. Both the ADF test equation and the AR conditional
// least squares fit are estimated through it.
type olsFit struct {
	Coeffs []float64 // one per design column
	StdErr []float64 // classical standard errors
	Resid  []float64
	SSE    float64
	Sigma2 float64 // MLE residual variance, SSE/n
	LogLik float64 // Gaussian log-likelihood at the MLE variance
	NObs   int
	NVars  int
}

// regressOLS estimates y = X*beta + eps by QR factorization and derives
// standard errors from (X'X)^-1. Errors out when the system is
// underdetermined or the design matrix is rank deficient.
func regressOLS(x *mat.Dense, y []float64) (*olsFit, error) {
	n, k := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("design matrix has %d rows but y has %d", n, len(y))
	}
	if n <= k {
		return nil, fmt.Errorf("%d observations cannot identify %d coefficients", n, k)
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, mat.NewDense(n, 1, y)); err != nil {
		return nil, fmt.Errorf("OLS solve: %w", err)
	}

	coeffs := make([]float64, k)
	for i := range coeffs {
		coeffs[i] = beta.At(i, 0)
	}

	var fitted mat.Dense
	fitted.Mul(x, &beta)

	resid := make([]float64, n)
	sse := 0.0
	for i := range resid {
		resid[i] = y[i] - fitted.At(i, 0)
		sse += resid[i] * resid[i]
	}

	var xtx, xtxInv mat.Dense
	xtx.Mul(x.T(), x)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("X'X not invertible: %w", err)
	}

	s2 := sse / float64(n-k)
	stderr := make([]float64, k)
	for i := range stderr {
		stderr[i] = math.Sqrt(s2 * xtxInv.At(i, i))
	}

	sigma2 := sse / float64(n)
	if sigma2 <= 0 {
		return nil, fmt.Errorf("degenerate residual variance %g", sigma2)
	}
	loglik := -0.5 * float64(n) * (math.Log(2*math.Pi) + math.Log(sigma2) + 1)

	return &olsFit{
		Coeffs: coeffs,
		StdErr: stderr,
		Resid:  resid,
		SSE:    sse,
		Sigma2: sigma2,
		LogLik: loglik,
		NObs:   n,
		NVars:  k,
	}, nil
}

// TStat returns the t-ratio of the i-th coefficient.
func (f *olsFit) TStat(i int) float64 {
	if f.StdErr[i] == 0 {
		return math.Inf(1)
	}
	return f.Coeffs[i] / f.StdErr[i]
}

// AIC returns the Akaike information criterion of the fit, counting one
// parameter per design column.
func (f *olsFit) AIC() float64 {
	return -2*f.LogLik + 2*float64(f.NVars)
}
