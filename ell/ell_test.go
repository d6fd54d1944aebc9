package ell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luk036/corr-solver/oracle"
)

// boxFeas is feasible on {x | x_i >= lo for all i}.
type boxFeas struct {
	lo float64
}

func (o *boxFeas) AssessFeas(x []float64) *oracle.Cut {
	for i, xi := range x {
		if fj := o.lo - xi; fj > 0 {
			g := make([]float64, len(x))
			g[i] = -1
			return &oracle.Cut{Grad: g, Val: fj}
		}
	}
	return nil
}

// quadOptim minimizes (x0-1)^2 + (x1-1)^2.
type quadOptim struct{}

func (quadOptim) AssessOptim(x []float64, gamma float64) (oracle.Cut, float64, bool) {
	f := (x[0]-1)*(x[0]-1) + (x[1]-1)*(x[1]-1)
	g := []float64{2 * (x[0] - 1), 2 * (x[1] - 1)}
	if fj := f - gamma; fj >= 0 {
		return oracle.Cut{Grad: g, Val: fj}, 0, false
	}
	return oracle.Cut{Grad: g, Val: 0}, f, true
}

func TestCuttingPlaneFeas(t *testing.T) {
	space := NewEll(100.0, []float64{0, 0})
	x, numIters := CuttingPlaneFeas(&boxFeas{lo: 0.5}, space, DefaultOptions())
	require.NotNil(t, x)
	assert.GreaterOrEqual(t, x[0], 0.5)
	assert.GreaterOrEqual(t, x[1], 0.5)
	assert.Less(t, numIters, 200)
}

func TestCuttingPlaneFeasInfeasible(t *testing.T) {
	// The feasible set lies outside the search ball.
	space := NewEll(1.0, []float64{0, 0})
	x, _ := CuttingPlaneFeas(&boxFeas{lo: 5.0}, space, DefaultOptions())
	assert.Nil(t, x)
}

func TestCuttingPlaneOptim(t *testing.T) {
	space := NewEll(100.0, []float64{0, 0})
	xBest, best, numIters := CuttingPlaneOptim(quadOptim{}, space, math.Inf(1), DefaultOptions())
	require.NotNil(t, xBest)
	assert.InDelta(t, 1.0, xBest[0], 1e-3)
	assert.InDelta(t, 1.0, xBest[1], 1e-3)
	assert.InDelta(t, 0.0, best, 1e-6)
	assert.LessOrEqual(t, numIters, 2000)
}

func TestEllDiagMatchesBall(t *testing.T) {
	a := NewEll(9.0, []float64{0, 0, 0})
	b := NewEllDiag([]float64{9, 9, 9}, []float64{0, 0, 0})
	cut := oracle.Cut{Grad: []float64{1, 0, 0}, Val: 0.5}
	require.Equal(t, Success, a.UpdateBiasCut(cut))
	require.Equal(t, Success, b.UpdateBiasCut(cut))
	assert.InDelta(t, a.TSq(), b.TSq(), 1e-12)
	for i := range a.XC() {
		assert.InDelta(t, a.XC()[i], b.XC()[i], 1e-12)
	}
}

func TestUpdateNoSoln(t *testing.T) {
	space := NewEll(1.0, []float64{0, 0})
	// A cut deeper than the ellipsoid radius proves infeasibility.
	status := space.UpdateBiasCut(oracle.Cut{Grad: []float64{1, 0}, Val: 2.0})
	assert.Equal(t, NoSoln, status)
}

func TestUpdateCentralShrinks(t *testing.T) {
	space := NewEll(4.0, []float64{0, 0})
	require.Equal(t, Success, space.UpdateCentralCut(oracle.Cut{Grad: []float64{1, 0}}))
	// Center moves against the gradient.
	assert.Negative(t, space.XC()[0])
	assert.Zero(t, space.XC()[1])
}

type thresholdBox struct {
	boxFeas
}

func (o *thresholdBox) Update(gamma float64) {
	o.lo = gamma
}

func TestBSearchAdaptor(t *testing.T) {
	// Feasible iff some point of the ball has all coordinates >= gamma;
	// for a radius-2 ball around the origin the sharp threshold is sqrt(2).
	adaptor := NewBSearchAdaptor(&thresholdBox{}, NewEll(4.0, []float64{0, 0}), DefaultOptions())
	// BSearch minimizes the *rejected* region from above, so probe the
	// negated question: smallest gamma with the box infeasible.
	gamma, numIters := BSearch(negate{adaptor}, 0.0, 4.0, Options{MaxIters: 100, Tol: 1e-4})
	assert.InDelta(t, math.Sqrt2, gamma, 1e-2)
	assert.Less(t, numIters, 100)
	assert.NotNil(t, adaptor.XBest())
}

type negate struct {
	inner BSearchTarget
}

func (n negate) AssessBS(gamma float64) bool {
	return !n.inner.AssessBS(gamma)
}
