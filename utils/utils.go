package utils

import (
	"gonum.org/v1/gonum/mat"
)

// Identity matrix.
func EyeSym(n int) *mat.SymDense {
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, 1)
	}
	return out
}

// All-ones symmetric matrix.
func OnesSym(n int) *mat.SymDense {
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 1)
		}
	}
	return out
}

// Diagonal matrix.
func DiagSym(v []float64) *mat.SymDense {
	out := mat.NewSymDense(len(v), nil)
	for i, d := range v {
		out.SetSym(i, i, d)
	}
	return out
}
