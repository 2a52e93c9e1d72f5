package element

import (
	"fmt"
	"math"

	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
)

// RefTol is the reference-coordinate tolerance for membership tests. A point
// on a facet shared between two cells lands on the reference boundary of
// both; the tolerance keeps roundoff from rejecting it in either one.
// 1e-8 sits well clear of Newton convergence noise (1e-12) while excluding
// genuinely exterior points.
const RefTol = 1.e-8

// NewtonTol and NewtonMaxIter bound the multilinear map inversion. The
// iteration is pure CPU work with a hard cap, never unbounded.
const (
	NewtonTol     = 1.e-12
	NewtonMaxIter = 50
)

/*
GeomMap is the geometric map Phi of one mesh cell, taking reference
coordinates to physical coordinates. Simplex maps are affine and invert by
a direct linear solve; quad/hex maps are multilinear and invert by Newton
iteration, as no closed form exists in general.

A GeomMap holds only per-cell vertex data and is safe for concurrent use.
*/
type GeomMap struct {
	Kind types.CellKind
	X    utils.Matrix // NumVerts x dim vertex coordinates
	dim  int
	// Affine cells factor once: x = v0 + J*(xi + 1)
	jac, jacInv utils.Matrix
	scale       float64 // Characteristic cell length for convergence scaling
}

func NewGeomMap(kind types.CellKind, X utils.Matrix) (gm *GeomMap) {
	var (
		nv, dim = X.Dims()
	)
	if nv != kind.NumVerts() || dim != kind.Dim() {
		panic(fmt.Errorf("vertex matrix is %dx%d, %s needs %dx%d",
			nv, dim, kind, kind.NumVerts(), kind.Dim()))
	}
	gm = &GeomMap{
		Kind: kind,
		X:    X,
		dim:  dim,
	}
	for i := 1; i < nv; i++ {
		var d2 float64
		for d := 0; d < dim; d++ {
			diff := X.At(i, d) - X.At(0, d)
			d2 += diff * diff
		}
		gm.scale = math.Max(gm.scale, math.Sqrt(d2))
	}
	if kind.IsSimplex() {
		// Columns are half the edge vectors out of vertex 0
		gm.jac = utils.NewMatrix(dim, dim)
		for j := 0; j < dim; j++ {
			for d := 0; d < dim; d++ {
				gm.jac.Set(d, j, 0.5*(X.At(j+1, d)-X.At(0, d)))
			}
		}
		gm.jacInv = gm.jac.InverseWithCheck()
		gm.jac.SetReadOnly("GeomMapJ")
		gm.jacInv.SetReadOnly("GeomMapJinv")
	}
	return
}

// vertexWeights evaluates the multilinear vertex shape functions at xi,
// matching the cell kind's vertex ordering
func (gm *GeomMap) vertexWeights(xi []float64) (w []float64) {
	switch gm.Kind {
	case types.Line:
		w = []float64{0.5 * (1 - xi[0]), 0.5 * (1 + xi[0])}
	case types.Triangle:
		w = []float64{-0.5 * (xi[0] + xi[1]), 0.5 * (1 + xi[0]), 0.5 * (1 + xi[1])}
	case types.Quadrilateral:
		r, s := xi[0], xi[1]
		w = []float64{
			0.25 * (1 - r) * (1 - s),
			0.25 * (1 + r) * (1 - s),
			0.25 * (1 + r) * (1 + s),
			0.25 * (1 - r) * (1 + s),
		}
	case types.Tetrahedron:
		r, s, t := xi[0], xi[1], xi[2]
		w = []float64{-0.5 * (1 + r + s + t), 0.5 * (1 + r), 0.5 * (1 + s), 0.5 * (1 + t)}
	case types.Hexahedron:
		r, s, t := xi[0], xi[1], xi[2]
		w = make([]float64, 8)
		for i, c := range hexCorners {
			w[i] = 0.125 * (1 + float64(c[0])*r) * (1 + float64(c[1])*s) * (1 + float64(c[2])*t)
		}
	}
	return
}

// hexCorners lists reference corner signs in the hexahedron vertex ordering
var hexCorners = [8][3]int{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// Apply maps reference coordinates to physical coordinates
func (gm *GeomMap) Apply(xi []float64) (x []float64) {
	var (
		w = gm.vertexWeights(xi)
	)
	x = make([]float64, gm.dim)
	for i, wi := range w {
		for d := 0; d < gm.dim; d++ {
			x[d] += wi * gm.X.At(i, d)
		}
	}
	return
}

// jacobianAt builds the dim x dim Jacobian of the multilinear map at xi
func (gm *GeomMap) jacobianAt(xi []float64) (J utils.Matrix) {
	J = utils.NewMatrix(gm.dim, gm.dim)
	switch gm.Kind {
	case types.Quadrilateral:
		r, s := xi[0], xi[1]
		dw := [4][2]float64{
			{-0.25 * (1 - s), -0.25 * (1 - r)},
			{0.25 * (1 - s), -0.25 * (1 + r)},
			{0.25 * (1 + s), 0.25 * (1 + r)},
			{-0.25 * (1 + s), 0.25 * (1 - r)},
		}
		for i := 0; i < 4; i++ {
			for d := 0; d < 2; d++ {
				for j := 0; j < 2; j++ {
					J.Set(d, j, J.At(d, j)+dw[i][j]*gm.X.At(i, d))
				}
			}
		}
	case types.Hexahedron:
		r, s, t := xi[0], xi[1], xi[2]
		for i, c := range hexCorners {
			cr, cs, ct := float64(c[0]), float64(c[1]), float64(c[2])
			dw := [3]float64{
				0.125 * cr * (1 + cs*s) * (1 + ct*t),
				0.125 * (1 + cr*r) * cs * (1 + ct*t),
				0.125 * (1 + cr*r) * (1 + cs*s) * ct,
			}
			for d := 0; d < 3; d++ {
				for j := 0; j < 3; j++ {
					J.Set(d, j, J.At(d, j)+dw[j]*gm.X.At(i, d))
				}
			}
		}
	default:
		panic(fmt.Errorf("jacobianAt only applies to multilinear cells, have %s", gm.Kind))
	}
	return
}

/*
Invert solves Phi(xi) = x for the reference coordinates of a physical
point. The second return reports whether the point lies inside this cell's
reference domain within RefTol; a false result only means "not this cell"
and must never be treated as a domain error by callers.
*/
func (gm *GeomMap) Invert(x []float64) (xi []float64, ok bool) {
	if gm.Kind.IsSimplex() {
		xi = gm.invertAffine(x)
	} else if xi, ok = gm.newton(x); !ok {
		// Iteration divergence rejects the candidate, nothing more
		return
	}
	ok = gm.inReference(xi)
	return
}

func (gm *GeomMap) invertAffine(x []float64) (xi []float64) {
	var (
		b = utils.NewVector(gm.dim)
	)
	for d := 0; d < gm.dim; d++ {
		b.DataP[d] = x[d] - gm.X.At(0, d)
	}
	sol := gm.jacInv.MulVec(b)
	xi = make([]float64, gm.dim)
	for d := 0; d < gm.dim; d++ {
		xi[d] = sol.AtVec(d) - 1
	}
	return
}

func (gm *GeomMap) newton(x []float64) (xi []float64, ok bool) {
	var (
		tol = NewtonTol * (1 + gm.scale)
	)
	xi = make([]float64, gm.dim) // Reference centroid initial guess
	for iter := 0; iter < NewtonMaxIter; iter++ {
		phi := gm.Apply(xi)
		res := utils.NewVector(gm.dim)
		var rmax float64
		for d := 0; d < gm.dim; d++ {
			res.DataP[d] = phi[d] - x[d]
			rmax = math.Max(rmax, math.Abs(res.DataP[d]))
		}
		if rmax < tol {
			ok = true
			return
		}
		J := gm.jacobianAt(xi)
		delta := J.SolveVec(res)
		for d := 0; d < gm.dim; d++ {
			xi[d] -= delta.AtVec(d)
		}
	}
	return
}

func (gm *GeomMap) inReference(xi []float64) bool {
	switch gm.Kind {
	case types.Line:
		return xi[0] >= -1-RefTol && xi[0] <= 1+RefTol
	case types.Triangle:
		return xi[0] >= -1-RefTol && xi[1] >= -1-RefTol && xi[0]+xi[1] <= RefTol
	case types.Tetrahedron:
		return xi[0] >= -1-RefTol && xi[1] >= -1-RefTol && xi[2] >= -1-RefTol &&
			xi[0]+xi[1]+xi[2] <= -1+RefTol
	case types.Quadrilateral, types.Hexahedron:
		for _, v := range xi {
			if v < -1-RefTol || v > 1+RefTol {
				return false
			}
		}
		return true
	}
	return false
}

// NearReference reports whether xi sits within slack of the reference cell,
// used to pull face neighbors into the candidate set for borderline misses
func (gm *GeomMap) NearReference(xi []float64, slack float64) bool {
	if xi == nil {
		return false
	}
	switch gm.Kind {
	case types.Line:
		return xi[0] >= -1-slack && xi[0] <= 1+slack
	case types.Triangle:
		return xi[0] >= -1-slack && xi[1] >= -1-slack && xi[0]+xi[1] <= slack
	case types.Tetrahedron:
		return xi[0] >= -1-slack && xi[1] >= -1-slack && xi[2] >= -1-slack &&
			xi[0]+xi[1]+xi[2] <= -1+slack
	case types.Quadrilateral, types.Hexahedron:
		for _, v := range xi {
			if v < -1-slack || v > 1+slack {
				return false
			}
		}
		return true
	}
	return false
}
