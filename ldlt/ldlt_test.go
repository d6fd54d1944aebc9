package ldlt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFactorPositiveDefinite(t *testing.T) {
	a := mat.NewSymDense(3, []float64{
		4, 12, -16,
		12, 37, -43,
		-16, -43, 98,
	})
	mgr := NewMgr(3)
	require.True(t, mgr.Factorize(a))
	assert.True(t, mgr.IsSPD())

	// U'U must reproduce the matrix.
	u := mgr.Sqrt()
	var utu mat.Dense
	utu.Mul(u.T(), u)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, a.At(i, j), utu.At(i, j), 1e-9)
		}
	}
}

func TestFactorIndefinite(t *testing.T) {
	a := mat.NewSymDense(2, []float64{
		1, 2,
		2, 1,
	})
	mgr := NewMgr(2)
	require.False(t, mgr.Factorize(a))

	start, stop := mgr.Pos()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, stop)

	ep := mgr.Witness()
	assert.InDelta(t, 3.0, ep, 1e-12)
	// The witness certifies the negative quadratic form exactly.
	assert.InDelta(t, -ep, mgr.SymQuad(a), 1e-12)
	assert.InDelta(t, -2.0, mgr.WitnessVec()[0], 1e-12)
	assert.InDelta(t, 1.0, mgr.WitnessVec()[1], 1e-12)
}

func TestFactorStopsAtFirstBadPivot(t *testing.T) {
	a := mat.NewSymDense(3, []float64{
		1, 0, 0,
		0, -1, 0,
		0, 0, 100,
	})
	mgr := NewMgr(3)
	calls := 0
	ok := mgr.Factor(func(i, j int) float64 {
		calls++
		return a.At(i, j)
	})
	require.False(t, ok)
	_, stop := mgr.Pos()
	assert.Equal(t, 2, stop)
	// The third row is never touched.
	assert.LessOrEqual(t, calls, 3)

	ep := mgr.Witness()
	assert.InDelta(t, 1.0, ep, 1e-12)
	assert.InDelta(t, -ep, mgr.SymQuad(a), 1e-12)
}

func TestFactorLazyAccessOrder(t *testing.T) {
	a := mat.NewSymDense(3, []float64{
		4, 2, 1,
		2, 5, 3,
		1, 3, 6,
	})
	mgr := NewMgr(3)
	lastRow := 0
	ok := mgr.Factor(func(i, j int) float64 {
		require.GreaterOrEqual(t, i, j, "upper-triangle access")
		require.GreaterOrEqual(t, i, lastRow, "row order not monotone")
		lastRow = i
		return a.At(i, j)
	})
	assert.True(t, ok)
}

func TestWitnessPanicsAfterSuccess(t *testing.T) {
	mgr := NewMgr(2)
	require.True(t, mgr.Factorize(mat.NewSymDense(2, []float64{1, 0, 0, 1})))
	assert.PanicsWithValue(t, ErrFactorSucceeded, func() { mgr.Witness() })
}

func TestSqrtPanicsAfterFailure(t *testing.T) {
	mgr := NewMgr(2)
	require.False(t, mgr.Factorize(mat.NewSymDense(2, []float64{-1, 0, 0, 1})))
	assert.PanicsWithValue(t, ErrNotPositive, func() { mgr.Sqrt() })
}
