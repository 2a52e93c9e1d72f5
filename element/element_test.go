package element

import (
	"math"
	"testing"

	"github.com/jychang48/firedrake/types"
	"github.com/stretchr/testify/assert"
)

func TestJacobi(t *testing.T) {
	{ // Gauss-Lobatto points include the endpoints and are symmetric
		for N := 1; N <= 5; N++ {
			X := JacobiGL(0, 0, N)
			assert.Equal(t, N+1, X.Len())
			assert.True(t, near(X.AtVec(0), -1))
			assert.True(t, near(X.AtVec(N), 1))
			for i := 0; i <= N; i++ {
				assert.True(t, near(X.AtVec(i), -X.AtVec(N-i)))
			}
		}
	}
	{ // Orthonormal Jacobi polynomials integrate correctly under GQ weights
		X, W := JacobiGQ(0, 0, 4)
		for i := 0; i <= 3; i++ {
			for j := 0; j <= 3; j++ {
				pi := JacobiP(X, 0, 0, i)
				pj := JacobiP(X, 0, 0, j)
				var integral float64
				for n := 0; n < X.Len(); n++ {
					integral += W.AtVec(n) * pi[n] * pj[n]
				}
				if i == j {
					assert.True(t, near(integral, 1))
				} else {
					assert.True(t, near(integral, 0))
				}
			}
		}
	}
}

func TestBasisKroneckerProperty(t *testing.T) {
	// Each basis polynomial equals 1 at its own node and 0 at all others
	cases := []struct {
		family Family
		kind   types.CellKind
		degree int
	}{
		{P, types.Line, 3},
		{P, types.Triangle, 2},
		{P, types.Triangle, 3},
		{P, types.Tetrahedron, 2},
		{Q, types.Quadrilateral, 2},
		{Q, types.Hexahedron, 2},
	}
	for _, tc := range cases {
		b := NewBasis(tc.family, tc.kind, tc.degree)
		nodes := b.RefNodes()
		_, dim := nodes.Dims()
		xi := make([]float64, dim)
		for i := 0; i < b.Np(); i++ {
			for d := 0; d < dim; d++ {
				xi[d] = nodes.At(i, d)
			}
			w := b.EvaluateBasis(xi)
			for j := range w {
				if j == i {
					assert.InDeltaf(t, 1., w[j], 1.e-9, "%s%d node %d", tc.family, tc.degree, i)
				} else {
					assert.InDeltaf(t, 0., w[j], 1.e-9, "%s%d node %d", tc.family, tc.degree, i)
				}
			}
		}
	}
}

func TestBasisPartitionOfUnity(t *testing.T) {
	// Lagrange weights sum to one anywhere in the reference cell
	pts := map[types.CellKind][][]float64{
		types.Line:          {{-0.3}, {0.77}},
		types.Triangle:      {{-0.5, -0.5}, {-0.9, 0.6}},
		types.Tetrahedron:   {{-0.7, -0.7, -0.7}, {-0.9, -0.9, 0.5}},
		types.Quadrilateral: {{0.3, -0.4}, {0.99, 0.99}},
		types.Hexahedron:    {{0.1, -0.2, 0.3}},
	}
	for kind, xis := range pts {
		family := P
		if !kind.IsSimplex() {
			family = Q
		}
		for degree := 1; degree <= 3; degree++ {
			b := NewBasis(family, kind, degree)
			for _, xi := range xis {
				w := b.EvaluateBasis(xi)
				var sum float64
				for _, val := range w {
					sum += val
				}
				assert.InDeltaf(t, 1., sum, 1.e-10, "%s degree %d", kind, degree)
			}
		}
	}
}

func TestBasisReproducesPolynomials(t *testing.T) {
	{ // P2 triangle basis reproduces a quadratic exactly
		b := NewBasis(P, types.Triangle, 2)
		f := func(r, s float64) float64 { return 0.5*r*r - r*s + 2*s + 1 }
		nodes := b.RefNodes()
		coeffs := make([]float64, b.Np())
		for i := range coeffs {
			coeffs[i] = f(nodes.At(i, 0), nodes.At(i, 1))
		}
		for _, xi := range [][]float64{{-0.2, -0.3}, {-0.9, -0.05}, {-1, -1}, {0, -1}} {
			w := b.EvaluateBasis(xi)
			var val float64
			for i, wi := range w {
				val += wi * coeffs[i]
			}
			assert.InDelta(t, f(xi[0], xi[1]), val, 1.e-10)
		}
	}
	{ // Q2 quad basis reproduces a biquadratic exactly
		b := NewBasis(Q, types.Quadrilateral, 2)
		f := func(r, s float64) float64 { return r*r*s*s - 3*r*s + s + 2 }
		nodes := b.RefNodes()
		coeffs := make([]float64, b.Np())
		for i := range coeffs {
			coeffs[i] = f(nodes.At(i, 0), nodes.At(i, 1))
		}
		for _, xi := range [][]float64{{0.4, 0.1}, {-1, 1}, {0.63, -0.9}} {
			w := b.EvaluateBasis(xi)
			var val float64
			for i, wi := range w {
				val += wi * coeffs[i]
			}
			assert.InDelta(t, f(xi[0], xi[1]), val, 1.e-10)
		}
	}
}

func TestFamilyDispatch(t *testing.T) {
	assert.Panics(t, func() { NewBasis(P, types.Quadrilateral, 1) })
	assert.Panics(t, func() { NewBasis(Q, types.Triangle, 1) })
	assert.Panics(t, func() { NewBasis(P, types.Triangle, 0) })
	assert.Panics(t, func() { NewBasis(Family("R"), types.Triangle, 1) })
	// Line cells accept both families
	assert.NotNil(t, NewBasis(P, types.Line, 2))
	assert.NotNil(t, NewBasis(Q, types.Line, 2))
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*(math.Abs(a)+1) {
		l = true
	}
	return
}
