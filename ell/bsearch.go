package ell

import (
	"github.com/luk036/corr-solver/oracle"
)

// BSearchTarget is probed by BSearch with candidate threshold values.
type BSearchTarget interface {
	AssessBS(gamma float64) bool
}

// BSearch bisects [lower, upper] for the smallest threshold the target
// accepts. Returns the final upper bound and the probe count; an unchanged
// upper bound means no probe ever succeeded.
func BSearch(target BSearchTarget, lower, upper float64, opts Options) (float64, int) {
	for iter := 0; iter < opts.MaxIters; iter++ {
		tau := (upper - lower) / 2
		if tau < opts.Tol {
			return upper, iter
		}
		gamma := lower + tau
		if target.AssessBS(gamma) {
			upper = gamma
		} else {
			lower = gamma
		}
	}
	return upper, opts.MaxIters
}

// ThresholdOracle is a feasibility oracle parameterized by a scalar
// threshold, such as the quadratic matrix inequality oracle.
type ThresholdOracle interface {
	Update(gamma float64)
	AssessFeas(x []float64) *oracle.Cut
}

// BSearchAdaptor turns a threshold oracle plus a search space into a
// bisection target: each probe runs a feasibility search on a copy of the
// space, and a successful probe keeps the shrunk copy so later probes start
// from it.
type BSearchAdaptor struct {
	omega ThresholdOracle
	space *Ell
	opts  Options
	xBest []float64
}

func NewBSearchAdaptor(omega ThresholdOracle, space *Ell, opts Options) *BSearchAdaptor {
	return &BSearchAdaptor{omega: omega, space: space, opts: opts}
}

// XBest is the feasible point of the last successful probe, nil when every
// probe failed.
func (a *BSearchAdaptor) XBest() []float64 {
	return a.xBest
}

func (a *BSearchAdaptor) AssessBS(gamma float64) bool {
	space := a.space.Clone()
	a.omega.Update(gamma)
	x, _ := CuttingPlaneFeas(a.omega, space, a.opts)
	if x == nil {
		return false
	}
	a.space = space
	a.xBest = x
	return true
}
