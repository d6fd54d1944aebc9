package oracle

import (
	"github.com/luk036/corr-solver/ldlt"
)

// Hmat is a symmetric matrix affine in the unknowns, evaluated lazily. Elem
// is only called with row >= col, rows in non-decreasing order. NegGradSymQuad
// returns the gradient, with respect to x, of -w'H(x)w for the witness held
// by the factorization manager.
type Hmat interface {
	Elem(row, col int, x []float64) float64
	NegGradSymQuad(mgr *ldlt.Mgr, x []float64) []float64
}

// GMI is the feasibility oracle for a general matrix inequality H(x) >= 0.
type GMI struct {
	h   Hmat
	mgr *ldlt.Mgr
}

// NewGMI wraps h, an n-by-n matrix inequality. The factorization scratch is
// owned by the oracle and reused across calls.
func NewGMI(h Hmat, n int) *GMI {
	return &GMI{h: h, mgr: ldlt.NewMgr(n)}
}

// Mgr exposes the factorization manager, whose state after an AssessFeas
// call is consumed by composite oracles.
func (o *GMI) Mgr() *ldlt.Mgr {
	return o.mgr
}

// AssessFeas returns nil when H(x) is positive semidefinite within the
// factorization tolerance, and otherwise a cut built from the factorization
// witness.
func (o *GMI) AssessFeas(x []float64) *Cut {
	if o.mgr.Factor(func(i, j int) float64 { return o.h.Elem(i, j, x) }) {
		return nil
	}
	ep := o.mgr.Witness()
	g := o.h.NegGradSymQuad(o.mgr, x)
	return &Cut{Grad: g, Val: ep}
}
