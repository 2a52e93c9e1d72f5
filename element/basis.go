package element

import (
	"fmt"

	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
)

// Family selects a finite element family by its conventional name: "P"
// for simplex Lagrange, "Q" for tensor-product Lagrange
type Family string

const (
	P Family = "P" // Lagrange on simplices
	Q Family = "Q" // Tensor-product Lagrange on quads/hexes
)

/*
Basis is a nodal Lagrange basis on a reference cell. The dynamic
element-family dispatch happens once, at construction via NewBasis; a
query-time EvaluateBasis call is a straight computation with no dispatch.

EvaluateBasis returns one weight per basis polynomial; contracting the
weights against a cell's local coefficients yields the interpolated value
at the reference point.
*/
type Basis interface {
	Kind() types.CellKind
	Degree() int
	Np() int
	RefNodes() utils.Matrix // Np x dim reference coordinates of the nodal points
	EvaluateBasis(xi []float64) (weights []float64)
}

// NewBasis resolves an element family and degree to a basis evaluator for
// the given cell kind. Line cells accept either family name, as the 1D
// bases coincide.
func NewBasis(family Family, kind types.CellKind, degree int) (b Basis) {
	if degree < 1 {
		panic(fmt.Errorf("polynomial degree must be >= 1, have %d", degree))
	}
	switch family {
	case P:
		if !kind.IsSimplex() {
			panic(fmt.Errorf("family P requires simplex cells, have %s", kind))
		}
		b = NewSimplexLagrange(kind, degree)
	case Q:
		if kind.IsSimplex() && kind != types.Line {
			panic(fmt.Errorf("family Q requires tensor-product cells, have %s", kind))
		}
		b = NewTensorLagrange(kind, degree)
	default:
		panic(fmt.Errorf("unknown element family %q", family))
	}
	return
}

/*
SimplexLagrange evaluates nodal Lagrange polynomials on line, triangle and
tetrahedron reference cells. There is no closed form for the Lagrange
polynomials through an arbitrary simplex node set, so evaluation goes
through the generalized Vandermonde matrix of the orthonormal Jacobi (1D)
or PKD (2D/3D) modal basis:

	weights(xi) = Vinv^T psi(xi)

with Vinv precomputed at construction. This keeps conditioning under
control at higher degree, unlike monomial evaluation.
*/
type SimplexLagrange struct {
	kind   types.CellKind
	degree int
	np     int
	nodes  utils.Matrix // np x dim
	VinvT  utils.Matrix
}

func NewSimplexLagrange(kind types.CellKind, degree int) (sl *SimplexLagrange) {
	var (
		V utils.Matrix
	)
	sl = &SimplexLagrange{
		kind:   kind,
		degree: degree,
	}
	switch kind {
	case types.Line:
		R := JacobiGL(0, 0, degree)
		sl.np = degree + 1
		sl.nodes = utils.NewMatrix(sl.np, 1, R.Copy().DataP)
		V = Vandermonde1D(degree, R)
	case types.Triangle:
		R, S := EquiNodes2D(degree)
		sl.np = (degree + 1) * (degree + 2) / 2
		sl.nodes = utils.NewMatrix(sl.np, 2)
		for i := 0; i < sl.np; i++ {
			sl.nodes.Set(i, 0, R.AtVec(i))
			sl.nodes.Set(i, 1, S.AtVec(i))
		}
		V = Vandermonde2D(degree, R, S)
	case types.Tetrahedron:
		R, S, T := EquiNodes3D(degree)
		sl.np = (degree + 1) * (degree + 2) * (degree + 3) / 6
		sl.nodes = utils.NewMatrix(sl.np, 3)
		for i := 0; i < sl.np; i++ {
			sl.nodes.Set(i, 0, R.AtVec(i))
			sl.nodes.Set(i, 1, S.AtVec(i))
			sl.nodes.Set(i, 2, T.AtVec(i))
		}
		V = Vandermonde3D(degree, R, S, T)
	default:
		panic(fmt.Errorf("no simplex Lagrange basis for %s", kind))
	}
	sl.VinvT = V.InverseWithCheck().Transpose()
	sl.nodes.SetReadOnly("RefNodes")
	sl.VinvT.SetReadOnly("VinvT")
	return
}

func (sl *SimplexLagrange) Kind() types.CellKind   { return sl.kind }
func (sl *SimplexLagrange) Degree() int            { return sl.degree }
func (sl *SimplexLagrange) Np() int                { return sl.np }
func (sl *SimplexLagrange) RefNodes() utils.Matrix { return sl.nodes }

func (sl *SimplexLagrange) EvaluateBasis(xi []float64) (weights []float64) {
	var (
		N   = sl.degree
		psi = utils.NewVector(sl.np)
	)
	switch sl.kind {
	case types.Line:
		R := utils.NewVector(1, []float64{xi[0]})
		for j := 0; j <= N; j++ {
			psi.DataP[j] = JacobiP(R, 0, 0, j)[0]
		}
	case types.Triangle:
		R := utils.NewVector(1, []float64{xi[0]})
		S := utils.NewVector(1, []float64{xi[1]})
		var sk int
		for i := 0; i <= N; i++ {
			for j := 0; j <= N-i; j++ {
				psi.DataP[sk] = Simplex2DP(R, S, i, j)[0]
				sk++
			}
		}
	case types.Tetrahedron:
		R := utils.NewVector(1, []float64{xi[0]})
		S := utils.NewVector(1, []float64{xi[1]})
		T := utils.NewVector(1, []float64{xi[2]})
		var sk int
		for i := 0; i <= N; i++ {
			for j := 0; j <= N-i; j++ {
				for k := 0; k <= N-i-j; k++ {
					psi.DataP[sk] = Simplex3DP(R, S, T, i, j, k)[0]
					sk++
				}
			}
		}
	}
	weights = sl.VinvT.MulVec(psi).DataP
	return
}

/*
TensorLagrange evaluates nodal Lagrange polynomials on quadrilateral and
hexahedral reference cells as tensor products of 1D barycentric Lagrange
polynomials on Gauss-Lobatto points. Node ordering is lexicographic with
the r index fastest.
*/
type TensorLagrange struct {
	kind   types.CellKind
	degree int
	np     int
	nodes  utils.Matrix
	lb     *LagrangeBasis1D
}

func NewTensorLagrange(kind types.CellKind, degree int) (tl *TensorLagrange) {
	var (
		dim = kind.Dim()
		n1  = degree + 1
	)
	switch kind {
	case types.Line, types.Quadrilateral, types.Hexahedron:
	default:
		panic(fmt.Errorf("no tensor-product Lagrange basis for %s", kind))
	}
	tl = &TensorLagrange{
		kind:   kind,
		degree: degree,
		lb:     NewLagrangeBasis1D(JacobiGL(0, 0, degree).DataP),
	}
	tl.np = 1
	for d := 0; d < dim; d++ {
		tl.np *= n1
	}
	tl.nodes = utils.NewMatrix(tl.np, dim)
	nodes1d := tl.lb.Nodes
	var sk int
	switch dim {
	case 1:
		for i := 0; i < n1; i++ {
			tl.nodes.Set(sk, 0, nodes1d[i])
			sk++
		}
	case 2:
		for j := 0; j < n1; j++ {
			for i := 0; i < n1; i++ {
				tl.nodes.Set(sk, 0, nodes1d[i])
				tl.nodes.Set(sk, 1, nodes1d[j])
				sk++
			}
		}
	case 3:
		for k := 0; k < n1; k++ {
			for j := 0; j < n1; j++ {
				for i := 0; i < n1; i++ {
					tl.nodes.Set(sk, 0, nodes1d[i])
					tl.nodes.Set(sk, 1, nodes1d[j])
					tl.nodes.Set(sk, 2, nodes1d[k])
					sk++
				}
			}
		}
	}
	tl.nodes.SetReadOnly("RefNodes")
	return
}

func (tl *TensorLagrange) Kind() types.CellKind   { return tl.kind }
func (tl *TensorLagrange) Degree() int            { return tl.degree }
func (tl *TensorLagrange) Np() int                { return tl.np }
func (tl *TensorLagrange) RefNodes() utils.Matrix { return tl.nodes }

func (tl *TensorLagrange) EvaluateBasis(xi []float64) (weights []float64) {
	var (
		dim = tl.kind.Dim()
		n1  = tl.degree + 1
	)
	weights = make([]float64, tl.np)
	fr := tl.lb.EvaluateAll(xi[0])
	switch dim {
	case 1:
		copy(weights, fr)
	case 2:
		fs := tl.lb.EvaluateAll(xi[1])
		var sk int
		for j := 0; j < n1; j++ {
			for i := 0; i < n1; i++ {
				weights[sk] = fr[i] * fs[j]
				sk++
			}
		}
	case 3:
		fs := tl.lb.EvaluateAll(xi[1])
		ft := tl.lb.EvaluateAll(xi[2])
		var sk int
		for k := 0; k < n1; k++ {
			for j := 0; j < n1; j++ {
				for i := 0; i < n1; i++ {
					weights[sk] = fr[i] * fs[j] * ft[k]
					sk++
				}
			}
		}
	}
	return
}
