package corr

// Polynomial holds coefficients in descending-degree order.
type Polynomial struct {
	Coeffs []float64
}

// At evaluates the polynomial at x by Horner's scheme.
func (p *Polynomial) At(x float64) float64 {
	v := 0.0
	for _, c := range p.Coeffs {
		v = v*x + c
	}
	return v
}

// Degree of the polynomial.
func (p *Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}
