package tsa

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Root is one root of the AR characteristic polynomial
// 1 − φ1·z − … − φp·z^p. The process is stationary when every root
// lies outside the unit circle.
type Root struct {
	Re      float64 `json:"re"`
	Im      float64 `json:"im"`
	Modulus float64 `json:"modulus"`
}

// RootsResult summarises the dynamics implied by fitted AR coefficients.
type RootsResult struct {
	Roots      []Root  `json:"roots"` // sorted by modulus, closest to the unit circle first
	Stationary bool    `json:"stationary"`
	HasCycle   bool    `json:"has_cycle"`
	CycleLen   float64 `json:"cycle_length"` // periods per cycle; 0 unless HasCycle
}

// imagEps separates genuinely complex eigenvalues from numerical noise
// on real ones.
const imagEps = 1e-10

// CharacteristicRoots computes the roots of the AR lag polynomial from
// the eigenvalues of its companion matrix. A complex eigenvalue pair
// implies pseudo-cyclical dynamics; the cycle length reported is
// 2π/|arg λ| of the largest-modulus complex pair. Trailing zero
// coefficients are ignored, and an empty polynomial is trivially
// stationary.
func CharacteristicRoots(coeffs []float64) (*RootsResult, error) {
	p := len(coeffs)
	for p > 0 && coeffs[p-1] == 0 {
		p--
	}
	if p == 0 {
		return &RootsResult{Stationary: true}, nil
	}

	companion := mat.NewDense(p, p, nil)
	for j := 0; j < p; j++ {
		companion.Set(0, j, coeffs[j])
	}
	for i := 1; i < p; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil, errors.New("companion matrix eigendecomposition failed")
	}
	eigenvalues := eig.Values(nil)

	res := &RootsResult{Stationary: true}
	bestMod := 0.0
	for _, lambda := range eigenvalues {
		if cmplx.Abs(lambda) >= 1 {
			res.Stationary = false
		}
		z := 1 / lambda // characteristic root is the eigenvalue inverse
		res.Roots = append(res.Roots, Root{
			Re:      real(z),
			Im:      imag(z),
			Modulus: cmplx.Abs(z),
		})
		if math.Abs(imag(lambda)) > imagEps && cmplx.Abs(lambda) > bestMod {
			bestMod = cmplx.Abs(lambda)
			res.HasCycle = true
			res.CycleLen = 2 * math.Pi / math.Abs(cmplx.Phase(lambda))
		}
	}
	sort.Slice(res.Roots, func(i, j int) bool {
		return res.Roots[i].Modulus < res.Roots[j].Modulus
	})
	return res, nil
}

// CycleAR2 returns the closed-form cycle length of an AR(2) process,
// 2π/arccos(φ1/(2·√(−φ2))). The second value reports whether the
// coefficients admit a cycle at all, which requires complex roots
// (φ1² + 4·φ2 < 0).
func CycleAR2(phi1, phi2 float64) (float64, bool) {
	if phi1*phi1+4*phi2 >= 0 {
		return 0, false
	}
	return 2 * math.Pi / math.Acos(phi1/(2*math.Sqrt(-phi2))), true
}
