package oracle

import (
	"errors"

	"github.com/luk036/corr-solver/ldlt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrLowerTriangle = errors.New("oracle: element access above the diagonal")

// qmiKernel evaluates H(x) = t*I - F(x)'F(x) with F(x) = F0 - (F1 x1 + ...)
// lazily. The m-by-m product matrix is never formed: a row of F(x) is
// computed and cached the first time the factorization touches it, so a full
// pass costs O(n*m) element computations instead of O(n^2*m).
type qmiKernel struct {
	f     []mat.Matrix
	f0    mat.Matrix
	n     int        // rows of F0
	fx    *mat.Dense // row cache of F(x)', m by n
	rows  int        // rows cached so far in the current pass
	gamma float64    // current threshold t
}

func (k *qmiKernel) Elem(row, col int, x []float64) float64 {
	if row < col {
		panic(ErrLowerTriangle)
	}
	if k.rows < row+1 {
		k.rows = row + 1
		r := k.fx.RawRowView(row)
		for j := 0; j < k.n; j++ {
			v := k.f0.At(j, row)
			for i, xi := range x {
				v -= k.f[i].At(j, row) * xi
			}
			r[j] = v
		}
	}
	a := -floats.Dot(k.fx.RawRowView(row), k.fx.RawRowView(col))
	if row == col {
		return k.gamma + a
	}
	return a
}

func (k *qmiKernel) NegGradSymQuad(mgr *ldlt.Mgr, _ []float64) []float64 {
	start, stop := mgr.Pos()
	wit := mgr.WitnessVec()
	// av = v' Fx over the active block.
	av := make([]float64, k.n)
	for j := 0; j < k.n; j++ {
		s := 0.0
		for i := start; i < stop; i++ {
			s += wit[i] * k.fx.At(i, j)
		}
		av[j] = s
	}
	g := make([]float64, len(k.f))
	vf := make([]float64, k.n)
	for idx, fk := range k.f {
		for j := 0; j < k.n; j++ {
			s := 0.0
			for i := start; i < stop; i++ {
				s += wit[i] * fk.At(i, j)
			}
			vf[j] = s
		}
		// d/dx_k of w'F(x)'F(x)w restricted to the witness support.
		g[idx] = -2.0 * floats.Dot(vf, av)
	}
	return g
}

// QMI is the feasibility oracle for the quadratic matrix inequality
//
//	t*I - F(x)'F(x) >= 0,  F(x) = F0 - (F1 x1 + F2 x2 + ...)
//
// with the threshold t tracked separately from x via Update.
type QMI struct {
	kernel *qmiKernel
	gmi    *GMI
}

// NewQMI builds the oracle for n-by-m basis matrices f and target f0.
func NewQMI(f []mat.Matrix, f0 mat.Matrix) *QMI {
	n, m := f0.Dims()
	k := &qmiKernel{
		f:  f,
		f0: f0,
		n:  n,
		fx: mat.NewDense(m, n, nil),
	}
	return &QMI{kernel: k, gmi: NewGMI(k, m)}
}

// Update sets the threshold t for subsequent feasibility checks.
func (o *QMI) Update(gamma float64) {
	o.kernel.gamma = gamma
}

// Mgr exposes the factorization manager of the underlying GMI oracle.
func (o *QMI) Mgr() *ldlt.Mgr {
	return o.gmi.Mgr()
}

// AssessFeas resets the row cache and checks the inequality at x.
func (o *QMI) AssessFeas(x []float64) *Cut {
	o.kernel.rows = 0
	return o.gmi.AssessFeas(x)
}
