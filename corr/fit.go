package corr

import (
	"errors"
	"math"

	"github.com/luk036/corr-solver/bspline"
	"github.com/luk036/corr-solver/ell"
	"github.com/luk036/corr-solver/ldlt"
	"github.com/luk036/corr-solver/oracle"
	"gonum.org/v1/gonum/mat"
)

var ErrNotPositiveDefinite = errors.New("corr: target covariance is not positive definite")

// OracleFamily builds an optimality oracle from basis matrices and the
// target covariance.
type OracleFamily func(basis []*mat.SymDense, y *mat.SymDense) oracle.OptimOracle

// SearchProc runs the external search engine over an oracle and returns the
// basis coefficients, the iteration count and a feasibility flag.
type SearchProc func(y *mat.SymDense, m int, omega oracle.OptimOracle) ([]float64, int, bool)

// FitPolynomial fits a degree m-1 polynomial correlation function to Y. The
// returned coefficients are reversed into descending-degree order.
func FitPolynomial(y *mat.SymDense, sites *mat.Dense, m int, family OracleFamily, search SearchProc) (*Polynomial, int, bool, error) {
	basis, err := PolyBasis(sites, m)
	if err != nil {
		return nil, 0, false, err
	}
	a, numIters, feasible := search(y, m, family(basis, y))
	if a == nil {
		return nil, numIters, false, nil
	}
	coeffs := make([]float64, m)
	for i, v := range a {
		coeffs[m-1-i] = v
	}
	return &Polynomial{Coeffs: coeffs}, numIters, feasible, nil
}

// FitBSpline fits an m-coefficient quadratic B-spline correlation function
// to Y, with the coefficients constrained to be non-increasing in distance.
func FitBSpline(y *mat.SymDense, sites *mat.Dense, m int, family OracleFamily, search SearchProc) (*bspline.Spline, int, bool, error) {
	basis, knots, degree, err := BSplineBasis(sites, m)
	if err != nil {
		return nil, 0, false, err
	}
	omega := oracle.NewMonoDecreasing(family(basis, y))
	c, numIters, feasible := search(y, m, omega)
	if c == nil {
		return nil, numIters, false, nil
	}
	spl, err := bspline.New(knots, c, degree)
	if err != nil {
		return nil, numIters, false, err
	}
	return spl, numIters, feasible, nil
}

// LsqCore drives the joint epigraph formulation: the coefficient vector is
// extended by the residual bound, searched over an axis-aligned ellipsoid
// sized from the Frobenius norm of Y. The starting point must not be all
// zero; the first coordinate is seeded with one.
//
// A zero target is fit exactly by the zero coefficient vector and is
// answered directly: the ellipsoid sizing degenerates at ||Y|| = 0, and the
// seed would hit the singular all-ones basis matrix whose witness carries a
// zero gradient.
func LsqCore(y *mat.SymDense, m int, omega oracle.OptimOracle) ([]float64, int, bool) {
	normY := mat.Norm(y, 2)
	if normY == 0 {
		return make([]float64, m), 0, true
	}
	normY2 := 32 * normY * normY
	r2 := make([]float64, m+1)
	for i := range r2 {
		r2[i] = 256
	}
	r2[m] = normY2 * normY2
	x := make([]float64, m+1)
	x[0] = 1.0
	x[m] = normY2 / 2
	space := ell.NewEllDiag(r2, x)
	xBest, _, numIters := ell.CuttingPlaneOptim(omega, space, math.Inf(1), ell.DefaultOptions())
	if xBest == nil {
		return nil, numIters, false
	}
	return xBest[:m], numIters, true
}

// MleCore drives the maximum-likelihood formulation over a plain ball.
func MleCore(_ *mat.SymDense, m int, omega oracle.OptimOracle) ([]float64, int, bool) {
	x := make([]float64, m)
	x[0] = 1.0
	space := ell.NewEll(50.0, x)
	xBest, _, numIters := ell.CuttingPlaneOptim(omega, space, math.Inf(1), ell.DefaultOptions())
	if xBest == nil {
		return nil, numIters, false
	}
	return xBest, numIters, true
}

// LsqPoly fits a polynomial by least squares with the joint epigraph
// formulation.
func LsqPoly(y *mat.SymDense, sites *mat.Dense, m int) (*Polynomial, int, bool, error) {
	return FitPolynomial(y, sites, m, lsqFamily, LsqCore)
}

// MlePoly fits a polynomial by maximum likelihood. Y is checked for
// positive definiteness up front since the likelihood inverts it.
func MlePoly(y *mat.SymDense, sites *mat.Dense, m int) (*Polynomial, int, bool, error) {
	if err := checkSPD(y); err != nil {
		return nil, 0, false, err
	}
	return FitPolynomial(y, sites, m, mleFamily, MleCore)
}

// LsqBSpline fits a monotone-decreasing B-spline by least squares.
func LsqBSpline(y *mat.SymDense, sites *mat.Dense, m int) (*bspline.Spline, int, bool, error) {
	return FitBSpline(y, sites, m, lsqFamily, LsqCore)
}

// MleBSpline fits a monotone-decreasing B-spline by maximum likelihood.
func MleBSpline(y *mat.SymDense, sites *mat.Dense, m int) (*bspline.Spline, int, bool, error) {
	if err := checkSPD(y); err != nil {
		return nil, 0, false, err
	}
	return FitBSpline(y, sites, m, mleFamily, MleCore)
}

// LsqPolyBS fits a polynomial by least squares with the direct bisection
// formulation: the residual bound is bisected while a quadratic matrix
// inequality oracle re-searches the coefficient ellipsoid at each probe.
func LsqPolyBS(y *mat.SymDense, sites *mat.Dense, m int) (*Polynomial, int, bool, error) {
	basis, err := PolyBasis(sites, m)
	if err != nil {
		return nil, 0, false, err
	}
	normY := mat.Norm(y, 2)
	if normY == 0 {
		return &Polynomial{Coeffs: make([]float64, m)}, 0, true, nil
	}
	fm := make([]mat.Matrix, m)
	for i, fk := range basis {
		fm[i] = fk
	}
	qmi := oracle.NewQMI(fm, y)

	x := make([]float64, m)
	x[0] = 1.0
	space := ell.NewEll(256.0, x)
	adaptor := ell.NewBSearchAdaptor(qmi, space, ell.DefaultOptions())

	upper := normY * normY
	t, numIters := ell.BSearch(adaptor, 0.0, upper, ell.Options{MaxIters: 2000, Tol: 1e-8})
	if t == upper {
		return nil, numIters, false, nil
	}
	a := adaptor.XBest()
	coeffs := make([]float64, m)
	for i, v := range a {
		coeffs[m-1-i] = v
	}
	return &Polynomial{Coeffs: coeffs}, numIters, true, nil
}

func lsqFamily(basis []*mat.SymDense, y *mat.SymDense) oracle.OptimOracle {
	return oracle.NewLsq(basis, y)
}

func mleFamily(basis []*mat.SymDense, y *mat.SymDense) oracle.OptimOracle {
	return oracle.NewMle(basis, y)
}

func checkSPD(y *mat.SymDense) error {
	if !ldlt.NewMgr(y.SymmetricDim()).Factorize(y) {
		return ErrNotPositiveDefinite
	}
	return nil
}
