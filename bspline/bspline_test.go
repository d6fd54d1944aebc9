package bspline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasisPartitionOfUnity(t *testing.T) {
	knots := []float64{0, 0, 0, 1, 2, 3, 4, 4, 4}
	degree := 2
	m := len(knots) - degree - 1
	for _, x := range []float64{0, 0.3, 1, 1.7, 2.5, 3.99} {
		sum := 0.0
		for k := 0; k < m; k++ {
			b := Basis(knots, degree, k, x)
			assert.GreaterOrEqual(t, b, 0.0)
			sum += b
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "x=%v", x)
	}
}

func TestBasisZeroOutsideSupport(t *testing.T) {
	knots := []float64{0, 1, 2, 3, 4}
	assert.Equal(t, 0.0, Basis(knots, 1, 0, 2.5))
	assert.Equal(t, 0.0, Basis(knots, 1, 2, 1.5))
	assert.Equal(t, 0.0, Basis(knots, 1, 0, -1.0))
}

func TestBasisLinearHat(t *testing.T) {
	knots := []float64{0, 1, 2}
	assert.InDelta(t, 0.5, Basis(knots, 1, 0, 0.5), 1e-12)
	assert.InDelta(t, 1.0, Basis(knots, 1, 0, 1.0), 1e-12)
	assert.InDelta(t, 0.25, Basis(knots, 1, 0, 1.75), 1e-12)
}

func TestSpline(t *testing.T) {
	knots := []float64{0, 0, 0, 1, 2, 3, 3, 3}
	coeffs := []float64{1, 2, 0, -1, 4}
	s, err := New(knots, coeffs, 2)
	require.NoError(t, err)

	for _, x := range []float64{0.1, 1.2, 2.8} {
		want := 0.0
		for i, c := range coeffs {
			want += c * Basis(knots, 2, i, x)
		}
		assert.InDelta(t, want, s.At(x), 1e-12)
	}
}

func TestSplineKnotCount(t *testing.T) {
	_, err := New([]float64{0, 1, 2}, []float64{1, 2}, 2)
	assert.ErrorIs(t, err, ErrKnotCount)
}
