package oracle

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Mle is the composite oracle for maximum-likelihood correlation fitting:
//
//	min  log det Omega(x) + Tr(Omega(x)^{-1} Y)
//	s.t. 2Y >= Omega(x) >= 0
//
// with Omega(x) = Sigma1 x1 + ... + Sigmam xm and Y the biased sample
// covariance. Y must be symmetric positive definite; callers verify this by
// an attempted factorization before constructing the oracle.
type Mle struct {
	y     *mat.SymDense
	sigma []*mat.SymDense
	lmi0  *LMI0
	lmi   *LMI
}

func NewMle(sigma []*mat.SymDense, y *mat.SymDense) *Mle {
	n := y.SymmetricDim()
	y2 := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			y2.SetSym(i, j, 2.0*y.At(i, j))
		}
	}
	return &Mle{
		y:     y,
		sigma: sigma,
		lmi0:  NewLMI0(sigma),
		lmi:   NewLMI(sigma, y2),
	}
}

// AssessOptim checks the two PSD constraints and, when both hold, evaluates
// the likelihood objective and its gradient from the retained factorization
// of Omega(x).
func (o *Mle) AssessOptim(x []float64, gamma float64) (Cut, float64, bool) {
	if cut := o.lmi.AssessFeas(x); cut != nil {
		return *cut, 0, false
	}
	if cut := o.lmi0.AssessFeas(x); cut != nil {
		return *cut, 0, false
	}

	// Omega(x) = R'R from the lower-bound oracle's factorization; the
	// log-determinant comes off the factor diagonal, avoiding an explicit
	// determinant.
	r := o.lmi0.Mgr().Sqrt()
	var invR mat.TriDense
	if err := invR.InverseTri(r); err != nil {
		panic(err)
	}
	var s, sy mat.Dense
	s.Mul(&invR, invR.T())
	sy.Mul(&s, o.y)

	n := o.y.SymmetricDim()
	f1 := mat.Trace(&sy)
	for i := 0; i < n; i++ {
		f1 += 2.0 * math.Log(r.At(i, i))
	}

	// g_i = Tr(S Sigma_i) - Tr(S Sigma_i S Y), the second trace via
	// row/column dot products.
	var syT, sfs mat.Dense
	syT.CloneFrom(sy.T())
	g := make([]float64, len(x))
	for i := range x {
		sfs.Mul(&s, o.sigma[i])
		gi := mat.Trace(&sfs)
		for k := 0; k < n; k++ {
			gi -= floats.Dot(sfs.RawRowView(k), syT.RawRowView(k))
		}
		g[i] = gi
	}

	if fj := f1 - gamma; fj >= 0 {
		return Cut{Grad: g, Val: fj}, 0, false
	}
	return Cut{Grad: g, Val: 0}, f1, true
}
