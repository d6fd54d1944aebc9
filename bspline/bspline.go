// Package bspline evaluates B-spline basis functions and splines over an
// arbitrary knot vector.
package bspline

import (
	"errors"
)

var ErrKnotCount = errors.New("bspline: need len(coeffs) + degree + 1 knots")

// Basis evaluates the k-th unit-coefficient B-spline basis function of the
// given degree at x, by the Cox-de Boor recursion. The value is zero outside
// the support [knots[k], knots[k+degree+1]).
func Basis(knots []float64, degree, k int, x float64) float64 {
	if degree == 0 {
		if knots[k] <= x && x < knots[k+1] {
			return 1.0
		}
		return 0.0
	}
	v := 0.0
	if d := knots[k+degree] - knots[k]; d > 0 {
		v += (x - knots[k]) / d * Basis(knots, degree-1, k, x)
	}
	if d := knots[k+degree+1] - knots[k+1]; d > 0 {
		v += (knots[k+degree+1] - x) / d * Basis(knots, degree-1, k+1, x)
	}
	return v
}

// Spline is a fitted B-spline function.
type Spline struct {
	Knots  []float64
	Coeffs []float64
	Degree int
}

func New(knots, coeffs []float64, degree int) (*Spline, error) {
	if len(knots) != len(coeffs)+degree+1 {
		return nil, ErrKnotCount
	}
	return &Spline{Knots: knots, Coeffs: coeffs, Degree: degree}, nil
}

// At evaluates the spline at x.
func (s *Spline) At(x float64) float64 {
	v := 0.0
	for i, c := range s.Coeffs {
		if c != 0 {
			v += c * Basis(s.Knots, s.Degree, i, x)
		}
	}
	return v
}
