package oracle

import (
	"github.com/luk036/corr-solver/ldlt"
	"gonum.org/v1/gonum/mat"
)

// lmi0Kernel is the plain PSD form H(x) = F1 x1 + F2 x2 + ...
type lmi0Kernel struct {
	f []*mat.SymDense
}

func (k *lmi0Kernel) Elem(row, col int, x []float64) float64 {
	v := 0.0
	for i, xi := range x {
		v += k.f[i].At(row, col) * xi
	}
	return v
}

func (k *lmi0Kernel) NegGradSymQuad(mgr *ldlt.Mgr, _ []float64) []float64 {
	g := make([]float64, len(k.f))
	for i, fk := range k.f {
		g[i] = -mgr.SymQuad(fk)
	}
	return g
}

// LMI0 is the feasibility oracle for F1 x1 + F2 x2 + ... >= 0.
type LMI0 struct {
	gmi *GMI
}

func NewLMI0(f []*mat.SymDense) *LMI0 {
	return &LMI0{gmi: NewGMI(&lmi0Kernel{f: f}, f[0].SymmetricDim())}
}

func (o *LMI0) Mgr() *ldlt.Mgr {
	return o.gmi.Mgr()
}

func (o *LMI0) AssessFeas(x []float64) *Cut {
	return o.gmi.AssessFeas(x)
}

// lmiKernel is the bounded form H(x) = B - (F1 x1 + F2 x2 + ...).
type lmiKernel struct {
	f []*mat.SymDense
	b *mat.SymDense
}

func (k *lmiKernel) Elem(row, col int, x []float64) float64 {
	v := k.b.At(row, col)
	for i, xi := range x {
		v -= k.f[i].At(row, col) * xi
	}
	return v
}

func (k *lmiKernel) NegGradSymQuad(mgr *ldlt.Mgr, _ []float64) []float64 {
	g := make([]float64, len(k.f))
	for i, fk := range k.f {
		g[i] = mgr.SymQuad(fk)
	}
	return g
}

// LMI is the feasibility oracle for B - (F1 x1 + F2 x2 + ...) >= 0.
type LMI struct {
	gmi *GMI
}

func NewLMI(f []*mat.SymDense, b *mat.SymDense) *LMI {
	return &LMI{gmi: NewGMI(&lmiKernel{f: f, b: b}, b.SymmetricDim())}
}

func (o *LMI) Mgr() *ldlt.Mgr {
	return o.gmi.Mgr()
}

func (o *LMI) AssessFeas(x []float64) *Cut {
	return o.gmi.AssessFeas(x)
}
