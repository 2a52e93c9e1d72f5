package fespace

import (
	"fmt"

	"github.com/jychang48/firedrake/utils"
)

/*
Function is a member of a FunctionSpace: the coefficient vector of the
nodal expansion. For a Lagrange basis the coefficients are point values at
the space's node coordinates, so interpolation of a closed-form expression
is direct evaluation at the nodes.
*/
type Function struct {
	FS     *FunctionSpace
	Coeffs utils.Vector
}

func NewFunction(fs *FunctionSpace) (f *Function) {
	f = &Function{
		FS:     fs,
		Coeffs: utils.NewVector(fs.NDof()),
	}
	return
}

// Interpolate fills the coefficients of a scalar function from a pointwise
// expression of the physical coordinates
func (f *Function) Interpolate(expr func(x []float64) float64) *Function {
	var (
		fs = f.FS
	)
	if fs.ValueSize != 1 {
		panic(fmt.Errorf("scalar Interpolate on a space with value size %d", fs.ValueSize))
	}
	x := make([]float64, fs.Msh.Dim)
	for n := 0; n < fs.NNodes; n++ {
		for d := range x {
			x[d] = fs.DofCoords.At(n, d)
		}
		f.Coeffs.DataP[n] = expr(x)
	}
	return f
}

// InterpolateVector fills the coefficients of a vector-valued function. The
// expression must return ValueSize components per point.
func (f *Function) InterpolateVector(expr func(x []float64) []float64) *Function {
	var (
		fs = f.FS
		vs = fs.ValueSize
	)
	x := make([]float64, fs.Msh.Dim)
	for n := 0; n < fs.NNodes; n++ {
		for d := range x {
			x[d] = fs.DofCoords.At(n, d)
		}
		val := expr(x)
		if len(val) != vs {
			panic(fmt.Errorf("expression returned %d components, space has %d", len(val), vs))
		}
		copy(f.Coeffs.DataP[n*vs:(n+1)*vs], val)
	}
	return f
}

// LocalCoeffs gathers the coefficients of component c over the local nodes
// of cell k into out, which must hold Np values
func (f *Function) LocalCoeffs(k, c int, out []float64) {
	var (
		fs = f.FS
		Np = fs.Basis.Np()
		vs = fs.ValueSize
	)
	if len(out) != Np {
		panic(fmt.Errorf("local coefficient buffer is %d, cell has %d nodes", len(out), Np))
	}
	for i := 0; i < Np; i++ {
		out[i] = f.Coeffs.DataP[fs.GlobalNode(k, i)*vs+c]
	}
}
