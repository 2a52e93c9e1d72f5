package element

import (
	"math"
)

/*
LagrangeBasis1D is a nodal Lagrange basis in barycentric form. The
barycentric weights are precomputed once per node set, so evaluating any
basis polynomial at an arbitrary point is stable at higher degree, unlike
naive monomial evaluation.
*/
type LagrangeBasis1D struct {
	P       int       // Order
	Np      int       // Dimension of basis = P+1
	Weights []float64 // Barycentric weights, one per basis polynomial
	Nodes   []float64 // Nodes at which basis is defined
}

func NewLagrangeBasis1D(R []float64) (lb *LagrangeBasis1D) {
	lb = &LagrangeBasis1D{
		P:       len(R) - 1,
		Np:      len(R),
		Weights: make([]float64, len(R)),
		Nodes:   R,
	}
	for j := 0; j < lb.Np; j++ {
		lb.Weights[j] = 1.
		for i := 0; i < lb.Np; i++ {
			if i != j {
				lb.Weights[j] /= R[j] - R[i]
			}
		}
	}
	return
}

// EvaluateAll computes all P+1 basis polynomials at the single point r
func (lb *LagrangeBasis1D) EvaluateAll(r float64) (f []float64) {
	f = make([]float64, lb.Np)
	// A query collocated with a node recovers the Kronecker property exactly
	for j, rj := range lb.Nodes {
		if math.Abs(r-rj) < 1.e-14 {
			f[j] = 1
			return
		}
	}
	var ell = 1.
	for _, rj := range lb.Nodes {
		ell *= r - rj
	}
	for j := range f {
		f[j] = ell * lb.Weights[j] / (r - lb.Nodes[j])
	}
	return
}
