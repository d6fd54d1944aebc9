// Package lds generates low-discrepancy sequences for quasi-random site
// placement.
package lds

// VdCorput generates the van der Corput sequence for a base: the radical
// inverse of 1, 2, 3, ... with the digits mirrored around the radix point.
type VdCorput struct {
	base  int
	count int
}

func NewVdCorput(base int) *VdCorput {
	return &VdCorput{base: base}
}

// Pop returns the next element of the sequence.
func (v *VdCorput) Pop() float64 {
	v.count++
	k := v.count
	res := 0.0
	denom := 1.0
	for k != 0 {
		denom *= float64(v.base)
		res += float64(k%v.base) / denom
		k /= v.base
	}
	return res
}

// Reseed restarts the sequence from the given index.
func (v *VdCorput) Reseed(seed int) {
	v.count = seed
}

// Halton generates points of the Halton sequence in the unit cube, one van
// der Corput sequence per coordinate.
type Halton struct {
	vdcs []*VdCorput
}

func NewHalton(bases []int) *Halton {
	vdcs := make([]*VdCorput, len(bases))
	for i, b := range bases {
		vdcs[i] = NewVdCorput(b)
	}
	return &Halton{vdcs: vdcs}
}

// Pop returns the next point of the sequence.
func (h *Halton) Pop() []float64 {
	p := make([]float64, len(h.vdcs))
	for i, v := range h.vdcs {
		p[i] = v.Pop()
	}
	return p
}
