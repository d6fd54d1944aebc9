package corr

import (
	"errors"
	"math"

	"github.com/luk036/corr-solver/bspline"
	"github.com/luk036/corr-solver/utils"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrTooFewSites   = errors.New("corr: need at least two distinct sites")
	ErrBadBasisCount = errors.New("corr: basis count must be at least one")
)

// SplineDegree is the fixed degree of the B-spline basis.
const SplineDegree = 2

// DistanceMatrix returns the pairwise Euclidean distances between sites.
func DistanceMatrix(sites *mat.Dense) (*mat.SymDense, error) {
	n, dim := sites.Dims()
	if n < 2 {
		return nil, ErrTooFewSites
	}
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := 0.0
			for k := 0; k < dim; k++ {
				h := sites.At(j, k) - sites.At(i, k)
				s += h * h
			}
			d.SetSym(i, j, math.Sqrt(s))
		}
	}
	return d, nil
}

// PolyBasis returns the m basis matrices of a polynomial in distance:
// Sigma_1 is all ones and Sigma_{k+1} is the elementwise product of Sigma_k
// with the distance matrix, giving degrees 0 through m-1.
func PolyBasis(sites *mat.Dense, m int) ([]*mat.SymDense, error) {
	if m < 1 {
		return nil, ErrBadBasisCount
	}
	d1, err := DistanceMatrix(sites)
	if err != nil {
		return nil, err
	}
	n := d1.SymmetricDim()
	basis := make([]*mat.SymDense, m)
	basis[0] = utils.OnesSym(n)
	for k := 1; k < m; k++ {
		cur := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				cur.SetSym(i, j, basis[k-1].At(i, j)*d1.At(i, j))
			}
		}
		basis[k] = cur
	}
	return basis, nil
}

// BSplineBasis returns m quadratic B-spline basis matrices over a knot
// vector evenly spaced on [0, 1.2 * max pairwise distance], together with
// the knot vector and the spline degree. Each matrix holds the values of a
// unit-coefficient basis function at the pairwise distances.
func BSplineBasis(sites *mat.Dense, m int) ([]*mat.SymDense, []float64, int, error) {
	if m < 1 {
		return nil, nil, 0, ErrBadBasisCount
	}
	d1, err := DistanceMatrix(sites)
	if err != nil {
		return nil, nil, 0, err
	}
	n := d1.SymmetricDim()

	dmax := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := d1.At(i, j); d > dmax {
				dmax = d
			}
		}
	}

	nKnots := m + SplineDegree + 1
	knots := make([]float64, nKnots)
	span := 1.2 * dmax
	for i := range knots {
		knots[i] = span * float64(i) / float64(nKnots-1)
	}

	basis := make([]*mat.SymDense, m)
	for k := 0; k < m; k++ {
		cur := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				cur.SetSym(i, j, bspline.Basis(knots, SplineDegree, k, d1.At(i, j)))
			}
		}
		basis[k] = cur
	}
	return basis, knots, SplineDegree, nil
}
