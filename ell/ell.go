// Package ell implements the ellipsoid search space and the cutting-plane
// drivers consumed by the separation oracles: given a candidate, the oracle
// returns a cut and the ellipsoid shrinks around the remaining feasible
// region until convergence or a proof that none exists.
package ell

import (
	"errors"
	"math"

	"github.com/luk036/corr-solver/oracle"
	"github.com/luk036/corr-solver/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrDimension = errors.New("ell: dimension must be at least 2")

// CutStatus reports the outcome of applying a cut to the search space.
type CutStatus int

const (
	Success CutStatus = iota
	NoSoln
	NoEffect
)

// Ell is the ellipsoid {x | (x - xc)'(kappa Q)^{-1}(x - xc) <= 1}.
type Ell struct {
	n     int
	kappa float64
	q     *mat.SymDense
	xc    []float64
	tsq   float64
	grad  *mat.VecDense // scratch: Q g
}

// NewEll returns a ball of squared radius r2 centered at xc.
func NewEll(r2 float64, xc []float64) *Ell {
	n := len(xc)
	if n < 2 {
		panic(ErrDimension)
	}
	return &Ell{
		n:     n,
		kappa: r2,
		q:     utils.EyeSym(n),
		xc:    xc,
		grad:  mat.NewVecDense(n, nil),
	}
}

// NewEllDiag returns an axis-aligned ellipsoid with per-coordinate squared
// radii r2 centered at xc.
func NewEllDiag(r2, xc []float64) *Ell {
	n := len(xc)
	if n < 2 {
		panic(ErrDimension)
	}
	return &Ell{
		n:     n,
		kappa: 1.0,
		q:     utils.DiagSym(r2),
		xc:    xc,
		grad:  mat.NewVecDense(n, nil),
	}
}

// XC returns the current center. The slice is live; callers that keep it
// must copy.
func (e *Ell) XC() []float64 {
	return e.xc
}

// TSq is the squared distance measure tau^2 = kappa * g'Qg of the last
// applied cut, used as the convergence test by the drivers.
func (e *Ell) TSq() float64 {
	return e.tsq
}

// Clone returns an independent copy of the search space.
func (e *Ell) Clone() *Ell {
	q := mat.NewSymDense(e.n, nil)
	q.CopySym(e.q)
	xc := make([]float64, e.n)
	copy(xc, e.xc)
	return &Ell{
		n:     e.n,
		kappa: e.kappa,
		q:     q,
		xc:    xc,
		tsq:   e.tsq,
		grad:  mat.NewVecDense(e.n, nil),
	}
}

// UpdateBiasCut applies a deep cut g'(x - xc) + beta <= 0 with beta >= 0.
func (e *Ell) UpdateBiasCut(cut oracle.Cut) CutStatus {
	return e.update(cut.Grad, cut.Val)
}

// UpdateCentralCut applies the cut through the center, ignoring the value.
func (e *Ell) UpdateCentralCut(cut oracle.Cut) CutStatus {
	return e.update(cut.Grad, 0)
}

func (e *Ell) update(g []float64, beta float64) CutStatus {
	gv := mat.NewVecDense(e.n, g)
	e.grad.MulVec(e.q, gv)
	omega := mat.Dot(gv, e.grad)
	e.tsq = e.kappa * omega
	if e.tsq <= 0 {
		// Zero gradient: nothing separates, the search space is exhausted.
		return NoSoln
	}
	tau := math.Sqrt(e.tsq)
	if beta > tau {
		return NoSoln
	}
	nf := float64(e.n)
	if nf*beta < -tau {
		return NoEffect
	}
	rho := (tau + nf*beta) / (nf + 1)
	sigma := 2.0 * rho / (tau + beta)
	alpha := beta / tau
	delta := nf * nf / (nf*nf - 1) * (1 - alpha*alpha)

	floats.AddScaled(e.xc, -rho/omega, e.grad.RawVector().Data)
	e.q.SymRankOne(e.q, -sigma/omega, e.grad)
	e.kappa *= delta
	return Success
}
