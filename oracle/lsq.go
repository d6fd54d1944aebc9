package oracle

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Lsq is the composite oracle for least-squares correlation fitting:
//
//	min  || F0 - F(x) ||
//	s.t. F(x) >= 0
//
// reformulated with an epigraph variable appended as the last coordinate:
//
//	min  x[m]
//	s.t. x[m]*I - F(x)'F(x) >= 0
//	     F(x) >= 0
//
// where F(x) = F1 x1 + ... + Fm xm and {Fk}ij = psi_k(|s_j - s_i|).
//
// The starting point must not be the all-zero vector: F(0) is singular, the
// first cut then carries a zero gradient and the search collapses. Callers
// seed x[0] = 1.
type Lsq struct {
	qmi  *QMI
	lmi0 *LMI0
}

func NewLsq(f []*mat.SymDense, f0 *mat.SymDense) *Lsq {
	fm := make([]mat.Matrix, len(f))
	for i, fk := range f {
		fm[i] = fk
	}
	return &Lsq{qmi: NewQMI(fm, f0), lmi0: NewLMI0(f)}
}

// AssessOptim checks the plain PSD constraint, then the quadratic inequality
// at threshold x[last], and finally compares the candidate bound with the
// incumbent.
func (o *Lsq) AssessOptim(x []float64, gamma float64) (Cut, float64, bool) {
	n := len(x)
	g := make([]float64, n)

	if cut := o.lmi0.AssessFeas(x[:n-1]); cut != nil {
		copy(g, cut.Grad)
		return Cut{Grad: g, Val: cut.Val}, 0, false
	}

	o.qmi.Update(x[n-1])
	if cut := o.qmi.AssessFeas(x[:n-1]); cut != nil {
		copy(g, cut.Grad)
		start, stop := o.qmi.Mgr().Pos()
		wit := o.qmi.Mgr().WitnessVec()[start:stop]
		// Derivative of the t*I term restricted to the witness block.
		g[n-1] = -floats.Dot(wit, wit)
		return Cut{Grad: g, Val: cut.Val}, 0, false
	}

	g[n-1] = 1.0
	tc := x[n-1]
	if fj := tc - gamma; fj > 0 {
		return Cut{Grad: g, Val: fj}, 0, false
	}
	return Cut{Grad: g, Val: 0}, tc, true
}
