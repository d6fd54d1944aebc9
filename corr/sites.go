// Package corr fits valid (positive-semidefinite) parametric correlation
// functions, polynomial or B-spline in distance, to empirically estimated
// spatial covariance matrices.
package corr

import (
	"math"

	"github.com/luk036/corr-solver/lds"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CreateSites places nx*ny Halton points scaled to [0, 10] x [0, 8].
func CreateSites(nx, ny int) *mat.Dense {
	num := nx * ny
	hgen := lds.NewHalton([]int{2, 3})
	sites := mat.NewDense(num, 2, nil)
	for i := 0; i < num; i++ {
		p := hgen.Pop()
		sites.Set(i, 0, 10.0*p[0])
		sites.Set(i, 1, 8.0*p[1])
	}
	return sites
}

// CreateIsotropic builds a biased sample covariance matrix for the sites by
// drawing nSamples correlated Gaussian vectors from an isotropic squared-
// exponential kernel. The seed is fixed for reproducibility.
func CreateIsotropic(sites *mat.Dense, nSamples int) *mat.SymDense {
	const (
		sdkern = 0.12 // width of the kernel
		sd     = 2.0  // standard deviation of the field
		tau    = 1e-5 // standard deviation of the white noise
	)
	n, dim := sites.Dims()

	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d2 := 0.0
			for k := 0; k < dim; k++ {
				h := sites.At(j, k) - sites.At(i, k)
				d2 += h * h
			}
			sigma.SetSym(i, j, math.Exp(-sdkern*d2))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(sigma) {
		// The squared-exponential kernel matrix is positive definite for
		// distinct sites.
		panic("corr: kernel matrix failed to factorize")
	}
	var l mat.TriDense
	chol.LTo(&l)

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(5)}
	y := mat.NewSymDense(n, nil)
	xv := mat.NewVecDense(n, nil)
	yv := mat.NewVecDense(n, nil)
	for s := 0; s < nSamples; s++ {
		for i := 0; i < n; i++ {
			xv.SetVec(i, sd*normal.Rand())
		}
		yv.MulVec(&l, xv)
		for i := 0; i < n; i++ {
			yv.SetVec(i, yv.AtVec(i)+tau*normal.Rand())
		}
		y.SymRankOne(y, 1.0/float64(nSamples), yv)
	}
	return y
}
