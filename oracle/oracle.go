// Package oracle implements separation oracles for fitting valid
// (positive-semidefinite) parametric correlation functions to empirically
// estimated spatial covariance matrices. Each oracle, given a candidate
// coefficient vector and the best objective value found so far, either
// certifies the candidate or returns a separating hyperplane for the
// external cutting-plane engine to apply.
package oracle

// Cut is a separating hyperplane: a gradient and a violation value. A
// positive value measures the magnitude of the violation; a zero value with
// a non-zero gradient is an ascent direction that redirects the search
// without shrinking it.
type Cut struct {
	Grad []float64
	Val  float64
}

// FeasOracle assesses feasibility of a candidate point. A nil cut means the
// point is feasible.
type FeasOracle interface {
	AssessFeas(x []float64) *Cut
}

// OptimOracle assesses both feasibility and optimality of a candidate point
// against the best value found so far. When improved is true, best is the
// new incumbent value and the returned cut is central.
type OptimOracle interface {
	AssessOptim(x []float64, gamma float64) (cut Cut, best float64, improved bool)
}
