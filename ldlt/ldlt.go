// Package ldlt provides an incremental LDL^T factorization of symmetric
// matrices supplied element-by-element through a callback. The factorization
// stops at the first non-positive pivot and exposes the failing leading block
// together with a witness vector certifying the non-positive quadratic form.
package ldlt

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrFactorSucceeded = errors.New("ldlt: no witness, last factorization succeeded")
	ErrNotPositive     = errors.New("ldlt: no square root, matrix is not positive definite")
)

// Mgr owns the factorization scratch storage. It is reused across calls and
// must not be shared between goroutines.
type Mgr struct {
	n     int
	start int // failing leading block is [start, stop)
	stop  int // 0 when the last factorization succeeded
	wit   []float64
	t     *mat.Dense // L below the diagonal, pivots on it, d*L transposed above
}

func NewMgr(n int) *Mgr {
	return &Mgr{
		n:   n,
		wit: make([]float64, n),
		t:   mat.NewDense(n, n, nil),
	}
}

// Factor runs the factorization, pulling the lower triangle through getElem.
// Rows are visited in increasing order and getElem(i, j) is only called with
// j <= i, so callers may cache rows monotonically. Returns true when the
// matrix is positive definite.
func (m *Mgr) Factor(getElem func(i, j int) float64) bool {
	t := m.t
	m.start, m.stop = 0, 0
	for i := 0; i < m.n; i++ {
		d := getElem(i, 0)
		for j := 0; j < i; j++ {
			// The partial value d equals d_j * L[i][j]; keep it in the upper
			// triangle so later rows can accumulate against it.
			t.Set(j, i, d)
			t.Set(i, j, d/t.At(j, j))
			s := j + 1
			d = getElem(i, s)
			for k := 0; k < s; k++ {
				d -= t.At(i, k) * t.At(k, s)
			}
		}
		t.Set(i, i, d)
		if d <= 0.0 {
			m.start, m.stop = 0, i+1
			break
		}
	}
	return m.IsSPD()
}

// Factorize is a convenience wrapper over a concrete symmetric matrix.
func (m *Mgr) Factorize(a mat.Matrix) bool {
	return m.Factor(func(i, j int) float64 { return a.At(i, j) })
}

// IsSPD reports whether the last factorization completed without hitting a
// non-positive pivot.
func (m *Mgr) IsSPD() bool {
	return m.stop == 0
}

// Pos returns the index range [start, stop) of the leading block that failed
// to factor.
func (m *Mgr) Pos() (start, stop int) {
	return m.start, m.stop
}

// Witness back-solves the witness vector w supported on the failing block,
// with w'Hw equal to the failing pivot, and returns ep = -w'Hw >= 0. Panics
// if the last factorization succeeded.
func (m *Mgr) Witness() float64 {
	if m.IsSPD() {
		panic(ErrFactorSucceeded)
	}
	for i := range m.wit {
		m.wit[i] = 0.0
	}
	p := m.stop - 1
	m.wit[p] = 1.0
	for i := p; i > m.start; i-- {
		s := 0.0
		for k := i; k < m.stop; k++ {
			s += m.t.At(k, i-1) * m.wit[k]
		}
		m.wit[i-1] = -s
	}
	return -m.t.At(p, p)
}

// WitnessVec exposes the witness buffer filled by Witness. Only the entries
// in [start, stop) are non-zero.
func (m *Mgr) WitnessVec() []float64 {
	return m.wit
}

// SymQuad computes w'Aw restricted to the active block, for the witness of
// the last failed factorization.
func (m *Mgr) SymQuad(a mat.Matrix) float64 {
	s := 0.0
	for i := m.start; i < m.stop; i++ {
		r := 0.0
		for j := m.start; j < m.stop; j++ {
			r += a.At(i, j) * m.wit[j]
		}
		s += m.wit[i] * r
	}
	return s
}

// Sqrt returns the upper-triangular factor U with H = U'U. Valid only after
// a successful factorization; panics otherwise.
func (m *Mgr) Sqrt() *mat.TriDense {
	if !m.IsSPD() {
		panic(ErrNotPositive)
	}
	u := mat.NewTriDense(m.n, mat.Upper, nil)
	for i := 0; i < m.n; i++ {
		di := math.Sqrt(m.t.At(i, i))
		u.SetTri(i, i, di)
		for j := i + 1; j < m.n; j++ {
			u.SetTri(i, j, m.t.At(j, i)*di)
		}
	}
	return u
}
