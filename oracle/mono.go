package oracle

// FirstViolation scans for the first adjacent increase in x and returns the
// corresponding cut, or nil when x is monotonically non-increasing. Any
// single violated pairwise inequality already separates the candidate from
// the monotone polytope, so the scan stops at the first hit rather than
// searching for the worst one.
func FirstViolation(x []float64) *Cut {
	for i := 0; i+1 < len(x); i++ {
		if fj := x[i+1] - x[i]; fj > 0 {
			g := make([]float64, len(x))
			g[i] = -1.0
			g[i+1] = 1.0
			return &Cut{Grad: g, Val: fj}
		}
	}
	return nil
}

// MonoDecreasing augments an inner oracle with a monotonic-decreasing
// constraint on all coordinates but the last (the epigraph or threshold
// coordinate, when present, is exempt). Used for basis-spline fits.
type MonoDecreasing struct {
	inner OptimOracle
}

func NewMonoDecreasing(inner OptimOracle) *MonoDecreasing {
	return &MonoDecreasing{inner: inner}
}

func (o *MonoDecreasing) AssessOptim(x []float64, gamma float64) (Cut, float64, bool) {
	n := len(x)
	if cut := FirstViolation(x[:n-1]); cut != nil {
		g := make([]float64, n)
		copy(g, cut.Grad)
		return Cut{Grad: g, Val: cut.Val}, 0, false
	}
	return o.inner.AssessOptim(x, gamma)
}
