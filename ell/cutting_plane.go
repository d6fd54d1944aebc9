package ell

import (
	"github.com/luk036/corr-solver/oracle"
)

// Options bound a search run. Tol is compared against the squared distance
// measure of the last cut for the cutting-plane drivers, and against the
// interval half-width for BSearch.
type Options struct {
	MaxIters int
	Tol      float64
}

// DefaultOptions mirror the driver defaults used by the fit pipelines.
func DefaultOptions() Options {
	return Options{MaxIters: 2000, Tol: 1e-20}
}

// CuttingPlaneFeas searches the space for a point satisfying the feasibility
// oracle. Returns the feasible point, or nil when the space shrinks below
// tolerance or no solution can exist, together with the iteration count.
func CuttingPlaneFeas(omega oracle.FeasOracle, space *Ell, opts Options) ([]float64, int) {
	for iter := 0; iter < opts.MaxIters; iter++ {
		cut := omega.AssessFeas(space.XC())
		if cut == nil {
			x := make([]float64, len(space.XC()))
			copy(x, space.XC())
			return x, iter
		}
		if space.UpdateBiasCut(*cut) != Success || space.TSq() < opts.Tol {
			return nil, iter + 1
		}
	}
	return nil, opts.MaxIters
}

// CuttingPlaneOptim minimizes over the space with an optimality oracle,
// starting from incumbent value gamma (plus infinity when none is known).
// Incumbent updates apply a central cut; rejections apply a deep cut.
// Returns the best point found (nil when none), its value, and the
// iteration count.
func CuttingPlaneOptim(omega oracle.OptimOracle, space *Ell, gamma float64, opts Options) ([]float64, float64, int) {
	var xBest []float64
	for iter := 0; iter < opts.MaxIters; iter++ {
		cut, best, improved := omega.AssessOptim(space.XC(), gamma)
		var status CutStatus
		if improved {
			gamma = best
			xBest = make([]float64, len(space.XC()))
			copy(xBest, space.XC())
			status = space.UpdateCentralCut(cut)
		} else {
			status = space.UpdateBiasCut(cut)
		}
		if status != Success || space.TSq() < opts.Tol {
			return xBest, gamma, iter + 1
		}
	}
	return xBest, gamma, opts.MaxIters
}
