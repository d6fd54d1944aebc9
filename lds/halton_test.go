package lds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVdCorputBase2(t *testing.T) {
	v := NewVdCorput(2)
	want := []float64{0.5, 0.25, 0.75, 0.125, 0.625, 0.375, 0.875}
	for _, w := range want {
		assert.InDelta(t, w, v.Pop(), 1e-12)
	}
}

func TestVdCorputBase3(t *testing.T) {
	v := NewVdCorput(3)
	want := []float64{1.0 / 3, 2.0 / 3, 1.0 / 9, 4.0 / 9, 7.0 / 9}
	for _, w := range want {
		assert.InDelta(t, w, v.Pop(), 1e-12)
	}
}

func TestVdCorputReseed(t *testing.T) {
	v := NewVdCorput(2)
	first := v.Pop()
	v.Pop()
	v.Reseed(0)
	assert.Equal(t, first, v.Pop())
}

func TestHalton(t *testing.T) {
	h := NewHalton([]int{2, 3})
	p := h.Pop()
	assert.InDelta(t, 0.5, p[0], 1e-12)
	assert.InDelta(t, 1.0/3, p[1], 1e-12)

	// The 7th point carries the radical inverse of 7.
	for i := 0; i < 5; i++ {
		h.Pop()
	}
	p = h.Pop()
	assert.InDelta(t, 0.875, p[0], 1e-12)
}
